// Package infer derives field type tags from sampled JSON values.
//
// The inference is deliberately shallow: arrays are typed from their first
// element only, and nested objects surface as a generic string-keyed
// dictionary rather than their own named type. Heterogeneous arrays, unions
// and enums are out of scope.
package infer

import "github.com/usestring/hargen/pkg/jsonvalue"

// TypeKind is the closed set of inferable field types.
type TypeKind int

const (
	// Optional marks a field whose sampled value was literally null.
	// A missing key and a null value are not distinguished.
	Optional TypeKind = iota
	Bool
	Int
	Float
	String
	// List carries an element tag inferred from the first element; an empty
	// array yields a list of Any.
	List
	// Dict covers nested objects, typed as string-keyed maps of anything.
	Dict
	Any
)

// Tag is an inferred type. Elem is set only for List tags.
type Tag struct {
	Kind TypeKind
	Elem *Tag
}

// Infer maps a JSON value to its type tag. Total over the value space and
// pure; sampling rules follow the package doc.
func Infer(v jsonvalue.Value) Tag {
	switch v.Kind {
	case jsonvalue.Null:
		return Tag{Kind: Optional}
	case jsonvalue.Bool:
		return Tag{Kind: Bool}
	case jsonvalue.Int:
		return Tag{Kind: Int}
	case jsonvalue.Float:
		return Tag{Kind: Float}
	case jsonvalue.String:
		return Tag{Kind: String}
	case jsonvalue.Array:
		if len(v.Arr) == 0 {
			return Tag{Kind: List, Elem: &Tag{Kind: Any}}
		}
		elem := Infer(v.Arr[0])
		return Tag{Kind: List, Elem: &elem}
	case jsonvalue.Object:
		return Tag{Kind: Dict}
	default:
		return Tag{Kind: Any}
	}
}
