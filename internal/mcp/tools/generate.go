package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/hargen/internal/capindex"
	"github.com/usestring/hargen/pkg/clientgen"
	"github.com/usestring/hargen/pkg/modelgen"
	"github.com/usestring/hargen/pkg/render"
)

// ListEndpointsInput is the input for hargen_list_endpoints.
type ListEndpointsInput struct {
	ScopeInput
}

// ListEndpointsOutput is the output for hargen_list_endpoints.
type ListEndpointsOutput struct {
	Endpoints []capindex.EndpointSummary `json:"endpoints,omitzero"`
	CallCount int                        `json:"call_count"`
}

// ToolListEndpoints groups the scoped calls by the client method they would
// generate.
func ToolListEndpoints(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEndpointsInput) (*sdkmcp.CallToolResult, ListEndpointsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListEndpointsInput) (*sdkmcp.CallToolResult, ListEndpointsOutput, error) {
		calls, err := d.loadScopedCalls(input.ScopeInput)
		if err != nil {
			return nil, ListEndpointsOutput{}, err
		}

		idx := capindex.Build(calls)
		return nil, ListEndpointsOutput{
			Endpoints: idx.Endpoints(capindex.Scope{}),
			CallCount: len(calls),
		}, nil
	}
}

// GenerateModelsInput is the input for hargen_generate_models.
type GenerateModelsInput struct {
	ScopeInput
	Language string `json:"language,omitempty"` // "python" or "go"; default from config
}

// ModelInfo summarizes one generated model.
type ModelInfo struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// GenerateModelsOutput is the output for hargen_generate_models.
type GenerateModelsOutput struct {
	Language string      `json:"language"`
	Source   string      `json:"source"`
	Models   []ModelInfo `json:"models,omitzero"`
}

// ToolGenerateModels infers models from the scoped calls and renders them as
// source text.
func ToolGenerateModels(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateModelsInput) (*sdkmcp.CallToolResult, GenerateModelsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateModelsInput) (*sdkmcp.CallToolResult, GenerateModelsOutput, error) {
		renderer, err := d.renderer(input.Language)
		if err != nil {
			return nil, GenerateModelsOutput{}, err
		}

		calls, err := d.loadScopedCalls(input.ScopeInput)
		if err != nil {
			return nil, GenerateModelsOutput{}, err
		}

		gen := modelgen.NewGenerator(
			modelgen.WithReservedWords(renderer.ReservedWords()),
			modelgen.WithBodyCache(d.Cache),
		)
		table, err := gen.GenerateModels(calls)
		if err != nil {
			return nil, GenerateModelsOutput{}, WrapGenError("model generation failed", err)
		}

		output := GenerateModelsOutput{
			Language: renderer.Language(),
			Source:   renderer.ModelFile(table),
			Models:   make([]ModelInfo, 0, table.Len()),
		}
		for _, url := range table.URLs() {
			def, _ := table.Get(url)
			output.Models = append(output.Models, ModelInfo{URL: url, Name: def.Name})
		}

		return nil, output, nil
	}
}

// GenerateClientInput is the input for hargen_generate_client.
type GenerateClientInput struct {
	ScopeInput
	Language   string `json:"language,omitempty"`    // "python" or "go"; default from config
	ClientName string `json:"client_name,omitempty"` // default from config
	Annotate   *bool  `json:"annotate,omitempty"`    // default from config
}

// GenerateClientOutput is the output for hargen_generate_client.
type GenerateClientOutput struct {
	Language string   `json:"language"`
	Source   string   `json:"source"`
	Methods  []string `json:"methods,omitzero"`
}

// ToolGenerateClient synthesizes a replayable client from the scoped calls
// and renders it as source text.
func ToolGenerateClient(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateClientInput) (*sdkmcp.CallToolResult, GenerateClientOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateClientInput) (*sdkmcp.CallToolResult, GenerateClientOutput, error) {
		renderer, err := d.renderer(input.Language)
		if err != nil {
			return nil, GenerateClientOutput{}, err
		}

		calls, err := d.loadScopedCalls(input.ScopeInput)
		if err != nil {
			return nil, GenerateClientOutput{}, err
		}

		annotate := d.Config.Annotate
		if input.Annotate != nil {
			annotate = *input.Annotate
		}
		clientName := input.ClientName
		if clientName == "" {
			clientName = d.Config.ClientName
		}

		opts := []clientgen.Option{
			clientgen.WithClientName(clientName),
			clientgen.WithBodyCache(d.Cache),
		}
		if annotate {
			mgen := modelgen.NewGenerator(
				modelgen.WithReservedWords(renderer.ReservedWords()),
				modelgen.WithBodyCache(d.Cache),
			)
			table, err := mgen.GenerateModels(calls)
			if err != nil {
				return nil, GenerateClientOutput{}, WrapGenError("model generation failed", err)
			}
			opts = append(opts, clientgen.WithModels(table))
		}

		cgen := clientgen.NewGenerator(opts...)
		def, err := cgen.Generate(calls)
		if err != nil {
			return nil, GenerateClientOutput{}, WrapGenError("client generation failed", err)
		}

		output := GenerateClientOutput{
			Language: renderer.Language(),
			Source:   renderer.Client(def),
			Methods:  make([]string, len(def.Methods)),
		}
		for i, m := range def.Methods {
			output.Methods[i] = m.Name
		}

		return nil, output, nil
	}
}

// renderer resolves the requested language, falling back to the configured
// default.
func (d *Deps) renderer(language string) (render.Renderer, error) {
	if language == "" {
		language = d.Config.Language
	}
	r, err := render.New(language)
	if err != nil {
		return nil, ErrInvalidInput(err.Error())
	}
	return r, nil
}
