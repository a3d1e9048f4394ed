package modelgen

import (
	"github.com/invopop/jsonschema"

	"github.com/usestring/hargen/pkg/infer"
)

// JSONSchema exports the model as a JSON Schema (Draft 2020-12). Property
// order follows field order; properties use the captured key names, not the
// sanitized identifiers, since the schema describes the wire format.
func (d ModelDef) JSONSchema() *jsonschema.Schema {
	switch d.Kind {
	case Record:
		schema := &jsonschema.Schema{
			Title:      d.Name,
			Type:       "object",
			Properties: jsonschema.NewProperties(),
		}
		for _, f := range d.Fields {
			schema.Properties.Set(f.RawName, tagSchema(f.Type))
		}
		return schema

	case ListOfRecord:
		return &jsonschema.Schema{
			Title: d.Name,
			Type:  "array",
			Items: d.Item.JSONSchema(),
		}

	case ListOfPrimitive:
		return &jsonschema.Schema{
			Title: d.Name,
			Type:  "array",
			Items: tagSchema(d.Elem),
		}

	case EmptyList:
		return &jsonschema.Schema{Title: d.Name, Type: "array"}

	default: // Primitive
		s := tagSchema(d.Elem)
		s.Title = d.Name
		return s
	}
}

func tagSchema(t infer.Tag) *jsonschema.Schema {
	switch t.Kind {
	case infer.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	case infer.Int:
		return &jsonschema.Schema{Type: "integer"}
	case infer.Float:
		return &jsonschema.Schema{Type: "number"}
	case infer.String:
		return &jsonschema.Schema{Type: "string"}
	case infer.List:
		s := &jsonschema.Schema{Type: "array"}
		if t.Elem != nil && t.Elem.Kind != infer.Any {
			s.Items = tagSchema(*t.Elem)
		}
		return s
	case infer.Dict:
		return &jsonschema.Schema{Type: "object"}
	default:
		// Optional (observed null) and Any match anything.
		return &jsonschema.Schema{}
	}
}
