// Package tools contains MCP tool implementations for hargen.
package tools

import (
	"os"

	"github.com/usestring/hargen/internal/capindex"
	"github.com/usestring/hargen/pkg/harfile"
)

// ScopeInput is the common scoping block shared by all tools.
type ScopeInput struct {
	HarPath     string `json:"har_path"`
	JQ          string `json:"jq,omitempty"`           // gojq expression, applied before scoping
	Method      string `json:"method,omitempty"`       // HTTP method filter
	Host        string `json:"host,omitempty"`         // exact host or "*.example.com"
	StatusClass int    `json:"status_class,omitempty"` // 2 for 2xx, 4 for 4xx, ...
}

// loadScopedCalls reads the capture at the input path, applies the optional
// jq expression, then bitmap-scopes by method, host and status class.
func (d *Deps) loadScopedCalls(in ScopeInput) ([]harfile.CapturedCall, error) {
	if in.HarPath == "" {
		return nil, ErrInvalidInput("har_path is required")
	}
	if _, err := os.Stat(in.HarPath); err != nil {
		return nil, ErrNotFound("HAR file", in.HarPath)
	}

	var opts []harfile.Option
	if d.Config.ValidateHAR {
		opts = append(opts, harfile.WithValidation())
	}
	if d.Config.MaxCallsPerCapture > 0 {
		opts = append(opts, harfile.WithMaxCalls(d.Config.MaxCallsPerCapture))
	}
	if d.Config.MaxBodyBytes > 0 {
		opts = append(opts, harfile.WithMaxBodyBytes(d.Config.MaxBodyBytes))
	}

	reader := harfile.NewReader(in.HarPath, opts...)
	calls, err := reader.APICalls()
	if err != nil {
		return nil, WrapGenError("failed to load capture", err)
	}

	if in.JQ != "" {
		calls, err = harfile.FilterJQ(calls, in.JQ)
		if err != nil {
			return nil, ErrInvalidInput("bad jq expression: " + err.Error())
		}
	}

	if in.Method == "" && in.Host == "" && in.StatusClass == 0 {
		return calls, nil
	}

	idx := capindex.Build(calls)
	return idx.Calls(capindex.Scope{
		Method:      in.Method,
		Host:        in.Host,
		StatusClass: in.StatusClass,
	}), nil
}
