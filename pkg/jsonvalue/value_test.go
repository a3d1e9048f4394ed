package jsonvalue

import (
	"testing"
)

func TestDecode_NumberClassification(t *testing.T) {
	tests := []struct {
		json string
		kind Kind
	}{
		{`0`, Int},
		{`42`, Int},
		{`-7`, Int},
		{`3.14`, Float},
		{`1.0`, Float}, // lexical: fraction present means float
		{`1e3`, Float},
		{`-0.5`, Float},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			v, err := Decode([]byte(tt.json))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Kind != tt.kind {
				t.Errorf("Decode(%s) kind = %v, want %v", tt.json, v.Kind, tt.kind)
			}
		})
	}
}

func TestDecode_ObjectKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta": 1, "alpha": 2, "mid": {"b": true, "a": null}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := v.Keys()
	want := []string{"zeta", "alpha", "mid"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	mid, ok := v.Get("mid")
	if !ok || mid.Kind != Object {
		t.Fatal("expected nested object for key 'mid'")
	}
	nested := mid.Keys()
	if nested[0] != "b" || nested[1] != "a" {
		t.Errorf("nested keys = %v, want [b a]", nested)
	}
}

func TestDecode_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := v.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v, want [a b]", keys)
	}
	a, _ := v.Get("a")
	if a.Int != 3 {
		t.Errorf("duplicate key value = %d, want last-seen 3", a.Int)
	}
}

func TestDecode_TrailingData(t *testing.T) {
	if _, err := Decode([]byte(`{"a": 1} extra`)); err == nil {
		t.Error("expected error for trailing data")
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, bad := range []string{``, `{`, `{"a":}`, `not json`} {
		if _, err := Decode([]byte(bad)); err == nil {
			t.Errorf("Decode(%q) expected error", bad)
		}
	}
}

func TestMarshalJSON_PreservesOrder(t *testing.T) {
	in := `{"z":1,"a":[true,null,1.5],"m":{"y":"x"}}`
	v, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}
