package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/usestring/hargen/pkg/clientgen"
	"github.com/usestring/hargen/pkg/infer"
	"github.com/usestring/hargen/pkg/jsonvalue"
	"github.com/usestring/hargen/pkg/modelgen"
)

// PythonRenderer emits dataclass models and a requests-based client.
type PythonRenderer struct{}

func (r *PythonRenderer) Language() string { return "python" }

func (r *PythonRenderer) ReservedWords() []string { return PythonReserved }

func (r *PythonRenderer) ModelDefinition(def modelgen.ModelDef) string {
	switch def.Kind {
	case modelgen.Record:
		return r.recordDefinition(def)

	case modelgen.ListOfRecord:
		item := r.recordDefinition(*def.Item)
		return item + fmt.Sprintf("\n\n# %s = List[%s]", def.Name, def.Item.Name)

	case modelgen.ListOfPrimitive:
		return fmt.Sprintf("# %s = List[%s]", def.Name, pyType(def.Elem))

	case modelgen.EmptyList:
		return fmt.Sprintf("# %s is an empty list", def.Name)

	default: // Primitive
		return fmt.Sprintf("# Simple type: %s", pyPrimitiveName(def.Sample))
	}
}

func (r *PythonRenderer) recordDefinition(def modelgen.ModelDef) string {
	var b strings.Builder
	b.WriteString("from typing import Optional, List, Dict, Any\n")
	b.WriteString("from dataclasses import dataclass\n")
	b.WriteString("\n\n")
	b.WriteString("@dataclass\n")
	fmt.Fprintf(&b, "class %s:\n", def.Name)
	b.WriteString("    \"\"\"Model generated from HAR response data.\"\"\"\n")

	if len(def.Fields) == 0 {
		b.WriteString("    pass")
		return b.String()
	}

	for i, f := range def.Fields {
		fmt.Fprintf(&b, "    %s: %s", f.Name, pyType(f.Type))
		if i < len(def.Fields)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *PythonRenderer) ModelFile(table *modelgen.Table) string {
	var b strings.Builder
	b.WriteString("\"\"\"\nGenerated models from HAR file analysis.\n\"\"\"\n\n")

	for _, url := range table.URLs() {
		def, _ := table.Get(url)
		fmt.Fprintf(&b, "# Model for: %s\n", url)
		b.WriteString(r.ModelDefinition(def))
		b.WriteString("\n\n\n")
	}
	return b.String()
}

func (r *PythonRenderer) Client(def *clientgen.ClientDef) string {
	var b strings.Builder
	b.WriteString("\"\"\"\nGenerated HTTP client from HAR file.\n\"\"\"\n\n")
	b.WriteString("import requests\n")
	b.WriteString("from typing import Dict, Any, Optional\n")
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "class %s:\n", def.Name)
	b.WriteString("    \"\"\"Simple HTTP client generated from HAR file data.\"\"\"\n\n")
	b.WriteString("    def __init__(self, base_url: Optional[str] = None):\n")
	b.WriteString("        self.base_url = base_url\n")
	b.WriteString("        self.session = requests.Session()\n")

	for _, m := range def.Methods {
		b.WriteByte('\n')
		r.method(&b, m)
	}
	return b.String()
}

func (r *PythonRenderer) method(b *strings.Builder, m clientgen.Method) {
	annotation := ""
	if m.ReturnType != "" {
		annotation = fmt.Sprintf(" -> %q", m.ReturnType)
	}
	fmt.Fprintf(b, "    def %s(self, **kwargs)%s:\n", m.Name, annotation)
	fmt.Fprintf(b, "        \"\"\"\n        %s %s\n\n        Original URL: %s\n        \"\"\"\n",
		m.HTTPMethod, m.Path, m.URL)
	fmt.Fprintf(b, "        url = self.base_url + %s if self.base_url else %s\n\n",
		pyString(m.Path), pyString(m.URL))

	if len(m.Headers) > 0 {
		b.WriteString("        headers = {\n")
		for _, h := range m.Headers {
			fmt.Fprintf(b, "            %s: %s,\n", pyString(h.Name), pyString(h.Value))
		}
		b.WriteString("        }\n")
		b.WriteString("        headers.update(kwargs.get(\"headers\", {}))\n")
	} else {
		b.WriteString("        headers = kwargs.get(\"headers\", {})\n")
	}
	b.WriteByte('\n')

	if len(m.Params) > 0 {
		b.WriteString("        params = {\n")
		for _, p := range m.Params {
			fmt.Fprintf(b, "            %s: %s,\n", pyString(p.Name), pyParamValue(p))
		}
		b.WriteString("        }\n")
		b.WriteString("        params.update(kwargs.get(\"params\", {}))\n")
	} else {
		b.WriteString("        params = kwargs.get(\"params\", {})\n")
	}
	b.WriteByte('\n')

	switch m.BodyKind {
	case clientgen.BodyJSON:
		fmt.Fprintf(b, "        json_data = %s\n", pyValue(m.BodyJSON, "        "))
		if m.BodyJSON.Kind == jsonvalue.Object {
			b.WriteString("        json_data.update(kwargs.get(\"json\", {}))\n\n")
		} else {
			// Lists and bare values have no keys to merge; the override
			// replaces the captured body wholesale.
			b.WriteString("        json_data = kwargs.get(\"json\", json_data)\n\n")
		}
		r.request(b, m.HTTPMethod, "json=json_data")
	case clientgen.BodyOpaque:
		fmt.Fprintf(b, "        data = kwargs.get(\"data\", %s)\n\n", pyString(m.BodyText))
		r.request(b, m.HTTPMethod, "data=data")
	default:
		r.request(b, m.HTTPMethod, "")
	}

	b.WriteString("        return response\n")
}

func (r *PythonRenderer) request(b *strings.Builder, httpMethod, bodyArg string) {
	b.WriteString("        response = self.session.request(\n")
	fmt.Fprintf(b, "            %s,\n", pyString(httpMethod))
	b.WriteString("            url,\n")
	b.WriteString("            headers=headers,\n")
	b.WriteString("            params=params,\n")
	if bodyArg != "" {
		fmt.Fprintf(b, "            %s,\n", bodyArg)
	}
	b.WriteString("        )\n")
}

// pyParamValue renders a single-valued parameter as a scalar string and a
// multi-valued one as an ordered list.
func pyParamValue(p clientgen.Param) string {
	if len(p.Values) == 1 {
		return pyString(p.Values[0])
	}
	quoted := make([]string, len(p.Values))
	for i, v := range p.Values {
		quoted[i] = pyString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// pyString renders a JSON-escaped double-quoted string, which is also a
// valid Python string literal.
func pyString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// pyValue renders a JSON value as a Python literal. Dicts go multiline at
// the given indent; arrays stay inline.
func pyValue(v jsonvalue.Value, indent string) string {
	switch v.Kind {
	case jsonvalue.Null:
		return "None"
	case jsonvalue.Bool:
		if v.Bool {
			return "True"
		}
		return "False"
	case jsonvalue.Int:
		return strconv.FormatInt(v.Int, 10)
	case jsonvalue.Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case jsonvalue.String:
		return pyString(v.Str)
	case jsonvalue.Array:
		parts := make([]string, len(v.Arr))
		for i, item := range v.Arr {
			parts[i] = pyValue(item, indent)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case jsonvalue.Object:
		if v.Obj.Len() == 0 {
			return "{}"
		}
		var b strings.Builder
		b.WriteString("{\n")
		for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
			fmt.Fprintf(&b, "%s    %s: %s,\n", indent, pyString(pair.Key), pyValue(pair.Value, indent+"    "))
		}
		b.WriteString(indent + "}")
		return b.String()
	}
	return "None"
}

func pyType(t infer.Tag) string {
	switch t.Kind {
	case infer.Optional:
		return "Optional[Any]"
	case infer.Bool:
		return "bool"
	case infer.Int:
		return "int"
	case infer.Float:
		return "float"
	case infer.String:
		return "str"
	case infer.List:
		elem := "Any"
		if t.Elem != nil {
			elem = pyType(*t.Elem)
		}
		return fmt.Sprintf("List[%s]", elem)
	case infer.Dict:
		return "Dict[str, Any]"
	default:
		return "Any"
	}
}

// pyPrimitiveName mirrors Python's type(...).__name__ for placeholder text.
func pyPrimitiveName(k jsonvalue.Kind) string {
	switch k {
	case jsonvalue.Null:
		return "NoneType"
	case jsonvalue.Bool:
		return "bool"
	case jsonvalue.Int:
		return "int"
	case jsonvalue.Float:
		return "float"
	case jsonvalue.String:
		return "str"
	default:
		return k.String()
	}
}
