// Package harfile reads HAR (HTTP Archive) captures and exposes them as a
// flat sequence of CapturedCall records in original recorded order. It is the
// data source for model and client generation; it never performs network I/O.
package harfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
)

// Header is one request header name/value pair. Order follows the capture.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Request is the request half of a captured exchange. Body is the raw body
// text; an empty string means no body was recorded.
type Request struct {
	Headers []Header `json:"headers"`
	Query   string   `json:"query"`
	Body    string   `json:"body,omitempty"`
}

// Response is the response half of a captured exchange.
type Response struct {
	Status int    `json:"status"`
	Body   string `json:"body,omitempty"`
}

// CapturedCall is one observed HTTP exchange. Constructed once from the raw
// capture and never mutated afterwards.
type CapturedCall struct {
	URL      string   `json:"url"`
	Method   string   `json:"method"` // uppercase token
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// HAR container structures. Only the fields generation needs are mapped.
type harFile struct {
	Log harLog `json:"log"`
}

type harLog struct {
	Entries []harEntry `json:"entries"`
}

type harEntry struct {
	Request  harRequest  `json:"request"`
	Response harResponse `json:"response"`
}

type harRequest struct {
	Method   string       `json:"method"`
	URL      string       `json:"url"`
	Headers  []Header     `json:"headers"`
	PostData *harPostData `json:"postData,omitempty"`
}

type harPostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

type harResponse struct {
	Status  int         `json:"status"`
	Content *harContent `json:"content,omitempty"`
}

type harContent struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Reader loads a HAR file and hands out its calls.
type Reader struct {
	path         string
	validate     bool
	maxCalls     int
	maxBodyBytes int
	calls        []CapturedCall
	loaded       bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithValidation validates the container against a minimal HAR schema before
// parsing. Malformed containers then fail loudly instead of yielding an empty
// call list.
func WithValidation() Option {
	return func(r *Reader) {
		r.validate = true
	}
}

// WithMaxCalls caps the number of calls taken from one file; the excess is
// dropped, keeping capture order. Zero or negative means unlimited.
func WithMaxCalls(n int) Option {
	return func(r *Reader) {
		r.maxCalls = n
	}
}

// WithMaxBodyBytes drops request and response bodies larger than n bytes.
// The call itself survives with the body treated as absent, so an oversized
// body degrades to a skipped model and a body-less method rather than
// truncated JSON. Zero or negative means unlimited.
func WithMaxBodyBytes(n int) Option {
	return func(r *Reader) {
		r.maxBodyBytes = n
	}
}

// NewReader creates a reader for the HAR file at path. Nothing is read until
// Load or the first accessor call.
func NewReader(path string, opts ...Option) *Reader {
	r := &Reader{path: path}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and parses the HAR file. Safe to call more than once; later
// calls are no-ops.
func (r *Reader) Load() error {
	if r.loaded {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("reading HAR file: %w", err)
	}

	if r.validate {
		if err := Validate(data); err != nil {
			return fmt.Errorf("validating %s: %w", r.path, err)
		}
	}

	calls, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", r.path, err)
	}

	if r.maxCalls > 0 && len(calls) > r.maxCalls {
		slog.Warn("capture exceeds call limit, dropping the excess",
			slog.String("path", r.path),
			slog.Int("calls", len(calls)),
			slog.Int("limit", r.maxCalls),
		)
		calls = calls[:r.maxCalls]
	}

	if r.maxBodyBytes > 0 {
		for i := range calls {
			if len(calls[i].Request.Body) > r.maxBodyBytes {
				calls[i].Request.Body = ""
			}
			if len(calls[i].Response.Body) > r.maxBodyBytes {
				calls[i].Response.Body = ""
			}
		}
	}

	r.calls = calls
	r.loaded = true
	return nil
}

// APICalls returns all captured calls in recorded order, loading the file on
// first use.
func (r *Reader) APICalls() ([]CapturedCall, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r.calls, nil
}

// FilterByStatus returns the calls whose response carried the given status.
func (r *Reader) FilterByStatus(status int) ([]CapturedCall, error) {
	calls, err := r.APICalls()
	if err != nil {
		return nil, err
	}

	out := make([]CapturedCall, 0)
	for _, c := range calls {
		if c.Response.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

// FilterByMethod returns the calls with the given HTTP method,
// case-insensitively.
func (r *Reader) FilterByMethod(method string) ([]CapturedCall, error) {
	calls, err := r.APICalls()
	if err != nil {
		return nil, err
	}

	want := strings.ToUpper(method)
	out := make([]CapturedCall, 0)
	for _, c := range calls {
		if c.Method == want {
			out = append(out, c)
		}
	}
	return out, nil
}

// Parse converts raw HAR bytes into captured calls, preserving entry order.
func Parse(data []byte) ([]CapturedCall, error) {
	var har harFile
	if err := json.Unmarshal(data, &har); err != nil {
		return nil, fmt.Errorf("decoding HAR container: %w", err)
	}

	calls := make([]CapturedCall, 0, len(har.Log.Entries))
	for _, e := range har.Log.Entries {
		calls = append(calls, entryToCall(e))
	}
	return calls, nil
}

func entryToCall(e harEntry) CapturedCall {
	call := CapturedCall{
		URL:    e.Request.URL,
		Method: strings.ToUpper(e.Request.Method),
		Request: Request{
			Headers: e.Request.Headers,
		},
		Response: Response{
			Status: e.Response.Status,
		},
	}

	if parsed, err := url.Parse(e.Request.URL); err == nil {
		call.Request.Query = parsed.RawQuery
	}
	if e.Request.PostData != nil {
		call.Request.Body = e.Request.PostData.Text
	}
	if e.Response.Content != nil {
		call.Response.Body = e.Response.Content.Text
	}
	return call
}
