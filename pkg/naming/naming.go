// Package naming derives source-safe identifiers from captured HTTP traffic:
// endpoint method names, model type names, and sanitized field names.
//
// Endpoint identity is a heuristic, not URL equality: names are built from
// the lowercased HTTP method and the cleaned last path segment, so calls to
// different full paths collide when their final segment and method match.
package naming

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModelSuffix is appended to every generated model type name.
const ModelSuffix = "Model"

var titleCaser = cases.Title(language.Und)

// EndpointName derives the method name for a captured call.
//
// The name is {lowercased method}_{cleaned last path segment}. When the URL
// has no usable path segment the fallback {method}_request_{index} is used,
// where index is the call's ordinal position in the batch. A name that would
// start with a digit is prefixed with "call_".
func EndpointName(method, rawURL string, index int) string {
	m := strings.ToLower(method)

	cleaned := CleanSegment(LastPathSegment(rawURL))
	if cleaned == "" {
		return fmt.Sprintf("%s_request_%d", m, index)
	}

	name := m + "_" + cleaned
	if name[0] >= '0' && name[0] <= '9' {
		name = "call_" + name
	}
	return name
}

// CleanSegment reduces a path segment to a source-identifier-safe token:
// everything from the first '.' (extension) or '?' is stripped, spaces,
// hyphens and any character outside [A-Za-z0-9_] become underscores, runs of
// underscores collapse to one, and leading/trailing underscores are removed.
// Returns "" when nothing survives.
func CleanSegment(segment string) string {
	if i := strings.IndexByte(segment, '.'); i >= 0 {
		segment = segment[:i]
	}
	// Query is parsed separately from the URL; this is belt and braces for
	// segments handed in raw.
	if i := strings.IndexByte(segment, '?'); i >= 0 {
		segment = segment[:i]
	}

	var b strings.Builder
	b.Grow(len(segment))
	lastUnderscore := false
	for _, r := range segment {
		safe := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if safe {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// LastPathSegment returns the final non-empty '/'-delimited component of the
// URL's path, or "" when the path is empty or the URL does not parse.
func LastPathSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}

	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

// ModelName derives a PascalCase type name from the URL's last path segment,
// with the fixed "Model" suffix. Query strings and file extensions are
// stripped; underscore- and hyphen-separated words are capitalized and
// concatenated. When the stem is empty or starts with a digit the name falls
// back to Response{index}.
func ModelName(rawURL string, index int) string {
	stem := LastPathSegment(rawURL)
	if i := strings.IndexByte(stem, '?'); i >= 0 {
		stem = stem[:i]
	}
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}

	name := Pascal(stem)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = fmt.Sprintf("Response%d", index)
	}
	return name + ModelSuffix
}

// Pascal splits on underscores, hyphens and spaces and concatenates the
// capitalized words.
func Pascal(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}) {
		b.WriteString(titleCaser.String(word))
	}
	return b.String()
}

// SanitizeField makes a JSON key safe as a source identifier: hyphen, dot
// and space become underscores, a leading digit gains an underscore prefix,
// and names matching a reserved word (case-insensitive) from the injected
// table gain a trailing underscore. The table is target-language-specific;
// the algorithm is not.
func SanitizeField(name string, reserved map[string]bool) string {
	s := strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)

	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	if reserved[strings.ToLower(s)] {
		s += "_"
	}
	return s
}

// ReservedSet builds a lowercase lookup table from a keyword list.
func ReservedSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
