// Package capindex maintains in-memory indexes over captured HTTP calls
// using Roaring bitmaps, so the CLI and MCP tools can scope generation to a
// subset of a capture without rescanning it.
package capindex

import (
	"net/url"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/hargen/pkg/harfile"
	"github.com/usestring/hargen/pkg/naming"
)

// Index holds inverted indexes over a batch of captured calls. Document IDs
// are the calls' positions in the batch, so scoped results keep capture
// order.
type Index struct {
	mu sync.RWMutex

	calls []harfile.CapturedCall

	idxMethod      map[string]*roaring.Bitmap
	idxHost        map[string]*roaring.Bitmap
	idxStatusClass map[int]*roaring.Bitmap // 2 for 2xx, 4 for 4xx, ...
}

// New creates an empty index.
func New() *Index {
	return &Index{
		idxMethod:      make(map[string]*roaring.Bitmap),
		idxHost:        make(map[string]*roaring.Bitmap),
		idxStatusClass: make(map[int]*roaring.Bitmap),
	}
}

// Build indexes a whole batch at once.
func Build(calls []harfile.CapturedCall) *Index {
	idx := New()
	for _, call := range calls {
		idx.Add(call)
	}
	return idx
}

// Add appends a call to the index and returns its document ID.
func (idx *Index) Add(call harfile.CapturedCall) uint32 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	docID := uint32(len(idx.calls))
	idx.calls = append(idx.calls, call)

	method := strings.ToUpper(call.Method)
	if method != "" {
		addToBitmap(idx.idxMethod, method, docID)
	}

	if host := hostOf(call.URL); host != "" {
		addToBitmap(idx.idxHost, host, docID)
	}

	if call.Response.Status >= 100 {
		addToIntBitmap(idx.idxStatusClass, call.Response.Status/100, docID)
	}

	return docID
}

// Len returns the number of indexed calls.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.calls)
}

// Scope selects a subset of the capture. Zero values do not constrain.
type Scope struct {
	Method      string // HTTP method, case-insensitive
	Host        string // exact host, or "*.example.com" for domain + subdomains
	StatusClass int    // 2 for 2xx, 4 for 4xx, ...
}

// Calls returns the calls matching the scope, in capture order.
func (idx *Index) Calls(s Scope) []harfile.CapturedCall {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bm := idx.allDocs()
	if s.Method != "" {
		bm = and(bm, idx.idxMethod[strings.ToUpper(s.Method)])
	}
	if s.Host != "" {
		bm = and(bm, idx.bitmapForHost(s.Host))
	}
	if s.StatusClass != 0 {
		bm = and(bm, idx.idxStatusClass[s.StatusClass])
	}

	out := make([]harfile.CapturedCall, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, idx.calls[it.Next()])
	}
	return out
}

// EndpointSummary describes one distinct generated method name within a
// scope.
type EndpointSummary struct {
	Name      string `json:"name"`
	Method    string `json:"method"`
	URL       string `json:"url"` // representative call's URL
	CallCount int    `json:"call_count"`
}

// Endpoints groups the scoped calls by the method name they would generate,
// in first-seen order.
func (idx *Index) Endpoints(s Scope) []EndpointSummary {
	calls := idx.Calls(s)

	byName := make(map[string]int)
	var out []EndpointSummary
	for i, call := range calls {
		name := naming.EndpointName(call.Method, call.URL, i)
		if pos, seen := byName[name]; seen {
			out[pos].CallCount++
			continue
		}
		byName[name] = len(out)
		out = append(out, EndpointSummary{
			Name:      name,
			Method:    strings.ToUpper(call.Method),
			URL:       call.URL,
			CallCount: 1,
		})
	}
	return out
}

// bitmapForHost resolves a host pattern. "*.example.com" matches the base
// domain and every subdomain; anything else matches exactly.
func (idx *Index) bitmapForHost(host string) *roaring.Bitmap {
	if !strings.HasPrefix(host, "*.") {
		return idx.idxHost[host]
	}

	baseDomain := host[2:]
	if baseDomain == "" {
		return nil
	}

	suffix := "." + baseDomain
	result := roaring.New()
	for key, bm := range idx.idxHost {
		if key == baseDomain || strings.HasSuffix(key, suffix) {
			result.Or(bm)
		}
	}
	if result.IsEmpty() {
		return nil
	}
	return result
}

func (idx *Index) allDocs() *roaring.Bitmap {
	bm := roaring.New()
	if n := uint64(len(idx.calls)); n > 0 {
		bm.AddRange(0, n)
	}
	return bm
}

func and(a, b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	return roaring.And(a, b)
}

func addToBitmap(m map[string]*roaring.Bitmap, key string, docID uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(docID)
}

func addToIntBitmap(m map[int]*roaring.Bitmap, key int, docID uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(docID)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
