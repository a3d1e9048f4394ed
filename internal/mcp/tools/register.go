package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: hargen_list_endpoints
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "hargen_list_endpoints",
		Description: "List the client methods a HAR capture would generate, grouped by endpoint name with call counts. Scope with method, host (supports *.example.com), status_class, or a jq expression over the calls.",
	}, ToolListEndpoints(d))

	// Tool 2: hargen_generate_models
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "hargen_generate_models",
		Description: "Infer data models from the JSON response bodies in a HAR capture and render them as source text. language is 'python' (dataclasses) or 'go' (structs).",
	}, ToolGenerateModels(d))

	// Tool 3: hargen_generate_client
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "hargen_generate_client",
		Description: "Synthesize a replayable HTTP client from a HAR capture: one method per endpoint with captured headers, query parameters and bodies pre-filled, overridable at call time. Set annotate=false to drop model return-type annotations.",
	}, ToolGenerateClient(d))
}
