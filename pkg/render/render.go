// Package render turns synthesized model and client definitions into source
// text. The inference and merge logic upstream is language-agnostic; only the
// renderers here know target syntax, so adding a language means adding one
// Renderer plus its keyword list.
package render

import (
	"fmt"

	"github.com/usestring/hargen/pkg/clientgen"
	"github.com/usestring/hargen/pkg/modelgen"
)

// Renderer emits source text for one target language.
type Renderer interface {
	// Language is the renderer's lowercase language name.
	Language() string

	// ReservedWords is the keyword denylist to inject into the model
	// generator for field sanitization.
	ReservedWords() []string

	// ModelDefinition renders one model (or its placeholder comment).
	ModelDefinition(def modelgen.ModelDef) string

	// ModelFile renders the whole model table as one file, in first-seen
	// URL order with a source-URL comment per model.
	ModelFile(table *modelgen.Table) string

	// Client renders the client definition as one file.
	Client(def *clientgen.ClientDef) string
}

// New returns the renderer for a language name.
func New(language string) (Renderer, error) {
	switch language {
	case "python":
		return &PythonRenderer{}, nil
	case "go":
		return &GoRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported target language %q", language)
	}
}

// PythonReserved is the keyword denylist applied to generated Python
// identifiers. Deliberately small: only words that showed up in real
// captures as JSON keys.
var PythonReserved = []string{
	"class", "def", "return", "if", "else", "for", "while",
	"import", "from", "as", "is",
}

// GoReserved is the full Go keyword list.
var GoReserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select", "struct",
	"switch", "type", "var",
}
