// Package clientgen synthesizes replayable client definitions from captured
// HTTP traffic: one method per distinct endpoint name, with headers, query
// parameters and bodies pre-filled from the capture. The result is a
// language-neutral intermediate representation; the render package turns it
// into source text with call-time override semantics.
package clientgen

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/usestring/hargen/pkg/harfile"
	"github.com/usestring/hargen/pkg/jsonvalue"
	"github.com/usestring/hargen/pkg/modelgen"
	"github.com/usestring/hargen/pkg/naming"
)

// ErrNoSource is returned when generation is invoked without calls and
// without a reader attached. This is a usage error and is never tolerated
// silently.
var ErrNoSource = errors.New("clientgen: no API calls or reader provided")

// transportHeaders are managed by the HTTP transport and must never be
// replayed verbatim.
var transportHeaders = map[string]bool{
	"host":           true,
	"content-length": true,
	"connection":     true,
}

// BodyKind says how a method's captured body should be emitted.
type BodyKind int

const (
	// BodyNone attaches no body.
	BodyNone BodyKind = iota
	// BodyJSON emits the parsed body as a structured merge point that
	// callers can override per key at invocation time.
	BodyJSON
	// BodyOpaque emits the body as an opaque string payload.
	BodyOpaque
)

// Param is one query parameter from the representative call, in first-seen
// order. A single value renders as a scalar, several as an ordered sequence.
type Param struct {
	Name   string
	Values []string
}

// Method is one synthesized client method.
type Method struct {
	Name       string
	HTTPMethod string
	URL        string // representative call's full URL
	Path       string

	Headers []harfile.Header // merged across the group, transport headers removed
	Params  []Param          // representative call only

	BodyKind BodyKind
	BodyJSON jsonvalue.Value // BodyJSON
	BodyText string          // BodyOpaque

	ReturnType string // model name, or "" for untyped passthrough
	CallCount  int    // how many captured calls mapped to this method
}

// ClientDef is the synthesized client: one method per endpoint group, in
// first-seen group order.
type ClientDef struct {
	Name    string
	Methods []Method
}

// Generator synthesizes client definitions.
type Generator struct {
	reader     *harfile.Reader
	models     *modelgen.Table
	cache      modelgen.BodyCache
	clientName string
}

// Option configures a Generator.
type Option func(*Generator)

// WithReader attaches a capture source used when Generate receives nil calls.
func WithReader(r *harfile.Reader) Option {
	return func(g *Generator) {
		g.reader = r
	}
}

// WithModels enables return-type annotations: a method whose representative
// URL has an entry in the table gets that model's generated name as its
// declared return type.
func WithModels(t *modelgen.Table) Option {
	return func(g *Generator) {
		g.models = t
	}
}

// WithBodyCache shares a decoded-body cache with the model generator.
func WithBodyCache(c modelgen.BodyCache) Option {
	return func(g *Generator) {
		g.cache = c
	}
}

// WithClientName overrides the generated client type name.
func WithClientName(name string) Option {
	return func(g *Generator) {
		g.clientName = name
	}
}

// NewGenerator creates a client generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{clientName: "HarClient"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the client definition. Calls mapping to the same endpoint
// name form one group and yield exactly one method; the group's first call is
// the representative for URL, query parameters and body, while headers are
// merged across every call in the group.
func (g *Generator) Generate(calls []harfile.CapturedCall) (*ClientDef, error) {
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

	groups := make(map[string][]harfile.CapturedCall)
	var order []string

	for idx, call := range calls {
		name := naming.EndpointName(call.Method, call.URL, idx)
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], call)
	}

	def := &ClientDef{Name: g.clientName}
	for _, name := range order {
		def.Methods = append(def.Methods, g.buildMethod(name, groups[name]))
	}
	return def, nil
}

func (g *Generator) buildMethod(name string, group []harfile.CapturedCall) Method {
	rep := group[0]

	m := Method{
		Name:       name,
		HTTPMethod: rep.Method,
		URL:        rep.URL,
		Headers:    mergeHeaders(group),
		Params:     parseQueryOrdered(rep.Request.Query),
		CallCount:  len(group),
	}

	if parsed, err := url.Parse(rep.URL); err == nil {
		m.Path = parsed.Path
	}

	if body := rep.Request.Body; body != "" {
		if value, err := g.decode(body); err == nil {
			m.BodyKind = BodyJSON
			m.BodyJSON = value
		} else {
			m.BodyKind = BodyOpaque
			m.BodyText = body
		}
	}

	if g.models != nil {
		if model, ok := g.models.Get(rep.URL); ok {
			m.ReturnType = model.Name
		}
	}

	return m
}

// mergeHeaders unions headers across the group in call order. The first-seen
// value wins per header name (case-insensitive); transport-managed headers
// are excluded altogether.
func mergeHeaders(group []harfile.CapturedCall) []harfile.Header {
	seen := make(map[string]bool)
	merged := make([]harfile.Header, 0)

	for _, call := range group {
		for _, h := range call.Request.Headers {
			key := strings.ToLower(h.Name)
			if transportHeaders[key] || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, h)
		}
	}
	return merged
}

// parseQueryOrdered parses a raw query string keeping first-occurrence key
// order and per-key value order. net/url's map form is unordered, which
// would make generated output nondeterministic.
func parseQueryOrdered(raw string) []Param {
	var params []Param
	index := make(map[string]int)

	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}

		if i, ok := index[key]; ok {
			params[i].Values = append(params[i].Values, value)
			continue
		}
		index[key] = len(params)
		params = append(params, Param{Name: key, Values: []string{value}})
	}
	return params
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
