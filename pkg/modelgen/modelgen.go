// Package modelgen synthesizes structural data models from captured JSON
// response bodies. It produces a language-neutral intermediate representation
// (ModelDef); rendering to source text is the render package's job.
package modelgen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/hargen/pkg/harfile"
	"github.com/usestring/hargen/pkg/infer"
	"github.com/usestring/hargen/pkg/jsonvalue"
	"github.com/usestring/hargen/pkg/naming"
)

// ErrNoSource is returned when generation is invoked without calls and
// without a reader. This is a usage error, not a data error.
var ErrNoSource = errors.New("modelgen: no API calls or reader provided")

// Kind classifies what a synthesized model describes.
type Kind int

const (
	// Record is a named type with zero or more fields.
	Record Kind = iota
	// ListOfRecord wraps an item record synthesized from the array's first
	// element; the item record carries the "{Name}Item" name.
	ListOfRecord
	// ListOfPrimitive is an array whose first element is not an object. No
	// named type is created; Elem holds the element tag.
	ListOfPrimitive
	// EmptyList and Primitive are placeholder results: no field structure
	// can be derived, so renderers emit a comment instead of a type.
	EmptyList
	Primitive
)

// Field is one record field: the sanitized identifier, the key as captured,
// and the inferred type. Order follows first-seen key order.
type Field struct {
	Name    string
	RawName string
	Type    infer.Tag
}

// ModelDef is a synthesized model.
type ModelDef struct {
	Name string
	URL  string
	Kind Kind

	Fields []Field   // Record
	Item   *ModelDef // ListOfRecord
	Elem   infer.Tag // ListOfPrimitive and Primitive

	// Sample is the top-level JSON kind observed, used in placeholder text.
	Sample jsonvalue.Kind
}

// Table maps source URLs to their synthesized models. Iteration order is
// first-seen URL order; a URL captured more than once keeps its original
// position with the last call's model (last-write-wins, no merge).
type Table struct {
	byURL map[string]ModelDef
	order []string
}

// Get returns the model for a URL.
func (t *Table) Get(url string) (ModelDef, bool) {
	def, ok := t.byURL[url]
	return def, ok
}

// URLs returns the table's keys in first-seen order.
func (t *Table) URLs() []string {
	return t.order
}

// Len returns the number of distinct URLs with models.
func (t *Table) Len() int {
	return len(t.order)
}

func (t *Table) set(url string, def ModelDef) {
	if _, seen := t.byURL[url]; !seen {
		t.order = append(t.order, url)
	}
	t.byURL[url] = def
}

// BodyCache memoizes decoded JSON bodies across generation passes. The
// implementation in internal/cache is LRU-backed; any keyed store works.
type BodyCache interface {
	Get(body string) (jsonvalue.Value, bool)
	Add(body string, v jsonvalue.Value)
}

// Generator synthesizes models from captured calls.
type Generator struct {
	reader   *harfile.Reader
	reserved map[string]bool
	cache    BodyCache
}

// Option configures a Generator.
type Option func(*Generator)

// WithReader attaches a capture source used when GenerateFromReader is
// called, or when GenerateModels receives nil calls.
func WithReader(r *harfile.Reader) Option {
	return func(g *Generator) {
		g.reader = r
	}
}

// WithReservedWords injects the target language's keyword denylist used for
// field-name sanitization. The synthesis algorithm itself is
// language-agnostic.
func WithReservedWords(words []string) Option {
	return func(g *Generator) {
		g.reserved = naming.ReservedSet(words)
	}
}

// WithBodyCache shares a decoded-body cache with other generators so each
// distinct body is parsed once per run.
func WithBodyCache(c BodyCache) Option {
	return func(g *Generator) {
		g.cache = c
	}
}

// NewGenerator creates a model generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Synthesize builds a model from one JSON value. Objects become records
// (an empty object is a valid zero-field record), non-empty arrays sample
// their first element only, and degenerate inputs come back as placeholders.
func (g *Generator) Synthesize(v jsonvalue.Value, name string) ModelDef {
	def := ModelDef{Name: name, Sample: v.Kind}

	switch v.Kind {
	case jsonvalue.Object:
		def.Kind = Record
		for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
			def.Fields = append(def.Fields, Field{
				Name:    naming.SanitizeField(pair.Key, g.reserved),
				RawName: pair.Key,
				Type:    infer.Infer(pair.Value),
			})
		}

	case jsonvalue.Array:
		if len(v.Arr) == 0 {
			def.Kind = EmptyList
			break
		}
		first := v.Arr[0]
		if first.Kind == jsonvalue.Object {
			item := g.Synthesize(first, name+"Item")
			def.Kind = ListOfRecord
			def.Item = &item
		} else {
			def.Kind = ListOfPrimitive
			def.Elem = infer.Infer(first)
		}

	default:
		def.Kind = Primitive
		def.Elem = infer.Infer(v)
	}

	return def
}

// GenerateModels synthesizes one model per URL from the calls' response
// bodies. Calls whose body is absent or not valid JSON are skipped silently.
// When two distinct URLs reduce to the same generated name, later ones get a
// numeric suffix so emitted output never declares the same type twice.
//
// Passing nil calls falls back to the attached reader; with neither, the
// error is ErrNoSource.
func (g *Generator) GenerateModels(calls []harfile.CapturedCall) (*Table, error) {
	if calls == nil {
		if g.reader == nil {
			return nil, ErrNoSource
		}
		loaded, err := g.reader.APICalls()
		if err != nil {
			return nil, fmt.Errorf("loading capture: %w", err)
		}
		calls = loaded
	}

	table := &Table{byURL: make(map[string]ModelDef)}
	owners := make(map[string]string) // generated name -> owning URL

	for idx, call := range calls {
		body := call.Response.Body
		if body == "" {
			continue
		}

		value, err := g.decode(body)
		if err != nil {
			slog.Debug("skipping non-JSON response body",
				slog.String("url", call.URL),
				slog.Int("index", idx),
			)
			continue
		}

		name := g.claimName(naming.ModelName(call.URL, idx), call.URL, owners)
		def := g.Synthesize(value, name)
		def.URL = call.URL
		table.set(call.URL, def)
	}

	return table, nil
}

// GenerateFromReader generates models from the attached reader.
func (g *Generator) GenerateFromReader() (*Table, error) {
	if g.reader == nil {
		return nil, ErrNoSource
	}
	calls, err := g.reader.APICalls()
	if err != nil {
		return nil, fmt.Errorf("loading capture: %w", err)
	}
	return g.GenerateModels(calls)
}

// claimName disambiguates generated names across distinct URLs. The same URL
// reclaiming its name (last-write-wins overwrite) is not a collision.
func (g *Generator) claimName(base, url string, owners map[string]string) string {
	name := base
	for n := 2; ; n++ {
		owner, taken := owners[name]
		if !taken || owner == url {
			break
		}
		name = fmt.Sprintf("%s%d", base, n)
	}
	owners[name] = url
	return name
}

func (g *Generator) decode(body string) (jsonvalue.Value, error) {
	if g.cache != nil {
		if v, ok := g.cache.Get(body); ok {
			return v, nil
		}
	}
	v, err := jsonvalue.Decode([]byte(body))
	if err != nil {
		return jsonvalue.Value{}, err
	}
	if g.cache != nil {
		g.cache.Add(body, v)
	}
	return v, nil
}
