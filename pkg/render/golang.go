package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/usestring/hargen/pkg/clientgen"
	"github.com/usestring/hargen/pkg/infer"
	"github.com/usestring/hargen/pkg/jsonvalue"
	"github.com/usestring/hargen/pkg/modelgen"
	"github.com/usestring/hargen/pkg/naming"
)

// GoRenderer emits struct models and a net/http client.
type GoRenderer struct{}

func (r *GoRenderer) Language() string { return "go" }

func (r *GoRenderer) ReservedWords() []string { return GoReserved }

func (r *GoRenderer) ModelDefinition(def modelgen.ModelDef) string {
	switch def.Kind {
	case modelgen.Record:
		return r.structDefinition(def)

	case modelgen.ListOfRecord:
		item := r.structDefinition(*def.Item)
		return item + fmt.Sprintf("\n\n// %s = []%s", def.Name, def.Item.Name)

	case modelgen.ListOfPrimitive:
		return fmt.Sprintf("// %s = []%s", def.Name, goType(def.Elem))

	case modelgen.EmptyList:
		return fmt.Sprintf("// %s is an empty list", def.Name)

	default: // Primitive
		return fmt.Sprintf("// Simple type: %s", goPrimitiveName(def.Sample))
	}
}

func (r *GoRenderer) structDefinition(def modelgen.ModelDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is generated from HAR response data.\n", def.Name)
	fmt.Fprintf(&b, "type %s struct {", def.Name)
	if len(def.Fields) == 0 {
		b.WriteString("}")
		return b.String()
	}
	b.WriteByte('\n')
	for _, f := range def.Fields {
		fmt.Fprintf(&b, "\t%s %s `json:%s`\n", goFieldName(f), goType(f.Type), strconv.Quote(f.RawName))
	}
	b.WriteString("}")
	return b.String()
}

// goFieldName turns a sanitized field name into an exported identifier.
func goFieldName(f modelgen.Field) string {
	name := naming.Pascal(f.Name)
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "Field" + name
	}
	return name
}

func (r *GoRenderer) ModelFile(table *modelgen.Table) string {
	var b strings.Builder
	b.WriteString("// Package models holds types generated from HAR file analysis.\n")
	b.WriteString("package models\n\n")

	for _, url := range table.URLs() {
		def, _ := table.Get(url)
		fmt.Fprintf(&b, "// Model for: %s\n", url)
		b.WriteString(r.ModelDefinition(def))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (r *GoRenderer) Client(def *clientgen.ClientDef) string {
	var b strings.Builder
	b.WriteString("// Package client holds an HTTP client generated from a HAR file.\n")
	b.WriteString("package client\n\n")
	needsStrings := false
	for _, m := range def.Methods {
		if m.BodyKind != clientgen.BodyNone {
			needsStrings = true
			break
		}
	}
	b.WriteString("import (\n")
	b.WriteString("\t\"net/http\"\n")
	b.WriteString("\t\"net/url\"\n")
	if needsStrings {
		b.WriteString("\t\"strings\"\n")
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "// %s replays requests captured in the source HAR file.\n", def.Name)
	fmt.Fprintf(&b, "type %s struct {\n", def.Name)
	b.WriteString("\tBaseURL string\n")
	b.WriteString("\tHTTP    *http.Client\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func New%s(baseURL string) *%s {\n", def.Name, def.Name)
	fmt.Fprintf(&b, "\treturn &%s{BaseURL: baseURL, HTTP: http.DefaultClient}\n", def.Name)
	b.WriteString("}\n\n")

	b.WriteString("// Overrides adjusts a replayed request at call time. Map entries\n")
	b.WriteString("// shallow-merge over the captured values; Body replaces the captured\n")
	b.WriteString("// body entirely when non-empty.\n")
	b.WriteString("type Overrides struct {\n")
	b.WriteString("\tHeaders map[string]string\n")
	b.WriteString("\tParams  map[string]string\n")
	b.WriteString("\tBody    string\n")
	b.WriteString("}\n")

	for _, m := range def.Methods {
		b.WriteByte('\n')
		r.method(&b, def.Name, m)
	}
	return b.String()
}

func (r *GoRenderer) method(b *strings.Builder, clientName string, m clientgen.Method) {
	goName := naming.Pascal(m.Name)
	fmt.Fprintf(b, "// %s replays %s %s.\n", goName, m.HTTPMethod, m.Path)
	if m.ReturnType != "" {
		fmt.Fprintf(b, "// The response body decodes as %s.\n", m.ReturnType)
	}
	fmt.Fprintf(b, "// Original URL: %s\n", m.URL)
	fmt.Fprintf(b, "func (c *%s) %s(o Overrides) (*http.Response, error) {\n", clientName, goName)

	fmt.Fprintf(b, "\ttarget := %s\n", strconv.Quote(m.URL))
	b.WriteString("\tif c.BaseURL != \"\" {\n")
	fmt.Fprintf(b, "\t\ttarget = c.BaseURL + %s\n", strconv.Quote(m.Path))
	b.WriteString("\t}\n\n")

	if len(m.Params) > 0 {
		b.WriteString("\tparams := url.Values{}\n")
		for _, p := range m.Params {
			for _, v := range p.Values {
				fmt.Fprintf(b, "\tparams.Add(%s, %s)\n", strconv.Quote(p.Name), strconv.Quote(v))
			}
		}
	} else {
		b.WriteString("\tparams := url.Values{}\n")
	}
	b.WriteString("\tfor k, v := range o.Params {\n")
	b.WriteString("\t\tparams.Set(k, v)\n")
	b.WriteString("\t}\n\n")

	switch m.BodyKind {
	case clientgen.BodyJSON:
		fmt.Fprintf(b, "\tbody := %s\n", strconv.Quote(goJSONBody(m.BodyJSON)))
		b.WriteString("\tif o.Body != \"\" {\n\t\tbody = o.Body\n\t}\n")
		fmt.Fprintf(b, "\treq, err := http.NewRequest(%s, target, strings.NewReader(body))\n", strconv.Quote(m.HTTPMethod))
	case clientgen.BodyOpaque:
		fmt.Fprintf(b, "\tbody := %s\n", strconv.Quote(m.BodyText))
		b.WriteString("\tif o.Body != \"\" {\n\t\tbody = o.Body\n\t}\n")
		fmt.Fprintf(b, "\treq, err := http.NewRequest(%s, target, strings.NewReader(body))\n", strconv.Quote(m.HTTPMethod))
	default:
		fmt.Fprintf(b, "\treq, err := http.NewRequest(%s, target, nil)\n", strconv.Quote(m.HTTPMethod))
	}
	b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n\n")

	for _, h := range m.Headers {
		fmt.Fprintf(b, "\treq.Header.Set(%s, %s)\n", strconv.Quote(h.Name), strconv.Quote(h.Value))
	}
	b.WriteString("\tfor k, v := range o.Headers {\n")
	b.WriteString("\t\treq.Header.Set(k, v)\n")
	b.WriteString("\t}\n")
	b.WriteString("\tif enc := params.Encode(); enc != \"\" {\n")
	b.WriteString("\t\treq.URL.RawQuery = enc\n")
	b.WriteString("\t}\n\n")

	b.WriteString("\treturn c.HTTP.Do(req)\n")
	b.WriteString("}\n")
}

// goJSONBody re-encodes the captured JSON body compactly, preserving key
// order from the capture.
func goJSONBody(v jsonvalue.Value) string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func goType(t infer.Tag) string {
	switch t.Kind {
	case infer.Bool:
		return "bool"
	case infer.Int:
		return "int64"
	case infer.Float:
		return "float64"
	case infer.String:
		return "string"
	case infer.List:
		elem := "any"
		if t.Elem != nil {
			elem = goType(*t.Elem)
		}
		return "[]" + elem
	case infer.Dict:
		return "map[string]any"
	default: // Optional, Any
		return "any"
	}
}

func goPrimitiveName(k jsonvalue.Kind) string {
	switch k {
	case jsonvalue.Null:
		return "nil"
	case jsonvalue.Bool:
		return "bool"
	case jsonvalue.Int:
		return "int64"
	case jsonvalue.Float:
		return "float64"
	case jsonvalue.String:
		return "string"
	default:
		return k.String()
	}
}
