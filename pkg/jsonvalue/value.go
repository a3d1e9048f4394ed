// Package jsonvalue provides an explicit tagged-union representation of JSON
// values that preserves object key order. It exists so that downstream type
// inference and code synthesis can pattern-match on a closed set of variants
// instead of type-switching on untyped any, and so that generated record
// fields come out in the order the capture contained them.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Array
	Object
)

// String returns a short name for the kind, used in placeholder output.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one JSON value. Exactly one payload field is meaningful, selected
// by Kind. Object fields keep first-seen key order; a duplicate key keeps the
// position of its first occurrence and the value of its last.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Arr   []Value
	Obj   *orderedmap.OrderedMap[string, Value]
}

// Decode parses data into a Value. Numbers keep their lexical form: a literal
// without a fraction or exponent that fits in int64 becomes Int, everything
// else becomes Float. Trailing non-whitespace content after the value is an
// error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Value{Kind: Null}, nil

	case bool:
		return Value{Kind: Bool, Bool: t}, nil

	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return Value{Kind: Int, Int: i}, nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return Value{Kind: Float, Float: f}, nil

	case string:
		return Value{Kind: String, Str: t}, nil

	case json.Delim:
		switch t {
		case '[':
			arr := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				arr = append(arr, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return Value{}, err
			}
			return Value{Kind: Array, Arr: arr}, nil

		case '{':
			obj := orderedmap.New[string, Value]()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return Value{}, err
			}
			return Value{Kind: Object, Obj: obj}, nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// MarshalJSON re-serializes the value, preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Null:
		return []byte("null"), nil
	case Bool:
		return json.Marshal(v.Bool)
	case Int:
		return []byte(strconv.FormatInt(v.Int, 10)), nil
	case Float:
		return json.Marshal(v.Float)
	case String:
		return json.Marshal(v.Str)
	case Array:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.Arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		first := true
		for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			kb, err := json.Marshal(pair.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := pair.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}

// Keys returns object keys in first-seen order. Nil for non-objects.
func (v Value) Keys() []string {
	if v.Kind != Object || v.Obj == nil {
		return nil
	}
	keys := make([]string, 0, v.Obj.Len())
	for pair := v.Obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get returns the value for an object key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object || v.Obj == nil {
		return Value{}, false
	}
	return v.Obj.Get(key)
}

// NewObject creates an empty object value. Intended for building test
// fixtures and override payloads programmatically.
func NewObject() Value {
	return Value{Kind: Object, Obj: orderedmap.New[string, Value]()}
}
