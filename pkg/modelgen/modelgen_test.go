package modelgen

import (
	"testing"

	"github.com/usestring/hargen/pkg/harfile"
	"github.com/usestring/hargen/pkg/infer"
	"github.com/usestring/hargen/pkg/jsonvalue"
)

func decode(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Decode([]byte(s))
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}

func jsonCall(method, url, responseBody string) harfile.CapturedCall {
	return harfile.CapturedCall{
		URL:      url,
		Method:   method,
		Response: harfile.Response{Status: 200, Body: responseBody},
	}
}

func TestSynthesize_RecordFieldOrder(t *testing.T) {
	g := NewGenerator()
	def := g.Synthesize(decode(t, `{"zeta": 1, "name": "x", "ok": true, "score": 1.5}`), "ThingModel")

	if def.Kind != Record {
		t.Fatalf("kind = %v, want Record", def.Kind)
	}
	wantNames := []string{"zeta", "name", "ok", "score"}
	wantKinds := []infer.TypeKind{infer.Int, infer.String, infer.Bool, infer.Float}
	if len(def.Fields) != len(wantNames) {
		t.Fatalf("got %d fields, want %d", len(def.Fields), len(wantNames))
	}
	for i, f := range def.Fields {
		if f.Name != wantNames[i] {
			t.Errorf("field[%d].Name = %q, want %q", i, f.Name, wantNames[i])
		}
		if f.Type.Kind != wantKinds[i] {
			t.Errorf("field[%d].Type = %v, want %v", i, f.Type.Kind, wantKinds[i])
		}
	}
}

func TestSynthesize_EmptyObject(t *testing.T) {
	g := NewGenerator()
	def := g.Synthesize(decode(t, `{}`), "EmptyModel")

	if def.Kind != Record {
		t.Fatalf("kind = %v, want Record", def.Kind)
	}
	if len(def.Fields) != 0 {
		t.Errorf("empty object should yield a zero-field record, got %d fields", len(def.Fields))
	}
}

func TestSynthesize_ListOfRecord(t *testing.T) {
	g := NewGenerator()
	def := g.Synthesize(decode(t, `[{"id": 1, "name": "a"}, {"different": true}]`), "UsersModel")

	if def.Kind != ListOfRecord {
		t.Fatalf("kind = %v, want ListOfRecord", def.Kind)
	}
	if def.Item == nil || def.Item.Name != "UsersModelItem" {
		t.Fatalf("item = %+v, want record named UsersModelItem", def.Item)
	}
	// Only the first element is sampled.
	if len(def.Item.Fields) != 2 || def.Item.Fields[0].RawName != "id" {
		t.Errorf("item fields = %+v", def.Item.Fields)
	}
}

func TestSynthesize_Placeholders(t *testing.T) {
	g := NewGenerator()

	if def := g.Synthesize(decode(t, `[]`), "M"); def.Kind != EmptyList {
		t.Errorf("empty array kind = %v, want EmptyList", def.Kind)
	}
	if def := g.Synthesize(decode(t, `[1, 2]`), "M"); def.Kind != ListOfPrimitive || def.Elem.Kind != infer.Int {
		t.Errorf("primitive array = %+v, want list of int", def)
	}
	if def := g.Synthesize(decode(t, `42`), "M"); def.Kind != Primitive {
		t.Errorf("bare primitive kind = %v, want Primitive", def.Kind)
	}
}

func TestSynthesize_FieldSanitization(t *testing.T) {
	g := NewGenerator(WithReservedWords([]string{"class"}))
	def := g.Synthesize(decode(t, `{"content-type": "a", "1st": 2, "class": "x"}`), "M")

	want := []string{"content_type", "_1st", "class_"}
	for i, f := range def.Fields {
		if f.Name != want[i] {
			t.Errorf("field[%d] = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestGenerateModels_SkipsAndLastWriteWins(t *testing.T) {
	g := NewGenerator()

	calls := []harfile.CapturedCall{
		jsonCall("GET", "https://api.test.com/users", `[{"id": 1, "name": "Alice"}]`),
		jsonCall("GET", "https://api.test.com/logo", `<html>not json</html>`),
		jsonCall("GET", "https://api.test.com/empty", ``),
		jsonCall("POST", "https://api.test.com/users", `{"id": 3, "name": "Alice", "email": "alice@test.com"}`),
	}

	table, err := g.GenerateModels(calls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 1 {
		t.Fatalf("table has %d URLs, want 1 (non-JSON and empty bodies skipped)", table.Len())
	}

	def, ok := table.Get("https://api.test.com/users")
	if !ok {
		t.Fatal("missing model for shared URL")
	}
	// The POST response was processed last, so the object model wins.
	if def.Kind != Record {
		t.Fatalf("kind = %v, want Record (last-write-wins)", def.Kind)
	}
	wantFields := map[string]infer.TypeKind{"id": infer.Int, "name": infer.String, "email": infer.String}
	if len(def.Fields) != len(wantFields) {
		t.Fatalf("got %d fields, want %d", len(def.Fields), len(wantFields))
	}
	for _, f := range def.Fields {
		if wantFields[f.RawName] != f.Type.Kind {
			t.Errorf("field %q type = %v, want %v", f.RawName, f.Type.Kind, wantFields[f.RawName])
		}
	}
}

func TestGenerateModels_NameCollisionAcrossURLs(t *testing.T) {
	g := NewGenerator()

	calls := []harfile.CapturedCall{
		jsonCall("GET", "https://a.test.com/users", `{"a": 1}`),
		jsonCall("GET", "https://b.test.com/users", `{"b": 2}`),
	}

	table, err := g.GenerateModels(calls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := table.Get("https://a.test.com/users")
	second, _ := table.Get("https://b.test.com/users")
	if first.Name != "UsersModel" {
		t.Errorf("first name = %q, want UsersModel", first.Name)
	}
	if second.Name != "UsersModel2" {
		t.Errorf("second name = %q, want disambiguated UsersModel2", second.Name)
	}
}

func TestGenerateModels_EmptyPathUsesIndexFallback(t *testing.T) {
	g := NewGenerator()

	calls := []harfile.CapturedCall{
		jsonCall("GET", "https://x.test.com/a", `{"a": 1}`),
		jsonCall("GET", "https://x.test.com/b", `{"b": 1}`),
		jsonCall("GET", "https://x.test.com/c", `{"c": 1}`),
		jsonCall("GET", "https://api.example.com/", `{"d": 1}`),
	}

	table, err := g.GenerateModels(calls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, ok := table.Get("https://api.example.com/")
	if !ok {
		t.Fatal("missing model for empty-path URL")
	}
	if def.Name != "Response3Model" {
		t.Errorf("name = %q, want Response3Model (batch index 3)", def.Name)
	}
}

func TestGenerateModels_NoSource(t *testing.T) {
	g := NewGenerator()
	if _, err := g.GenerateModels(nil); err != ErrNoSource {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
	if _, err := g.GenerateFromReader(); err != ErrNoSource {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestGenerateModels_EmptyCallList(t *testing.T) {
	// An explicitly supplied empty capture is not a missing source: it must
	// yield an empty table, not ErrNoSource.
	g := NewGenerator()

	table, err := g.GenerateModels([]harfile.CapturedCall{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("got %d models, want 0", table.Len())
	}
}

func TestJSONSchema_Record(t *testing.T) {
	g := NewGenerator()
	def := g.Synthesize(decode(t, `{"id": 1, "tags": ["a"], "meta": {"x": 1}, "gone": null}`), "ThingModel")

	schema := def.JSONSchema()
	if schema.Type != "object" || schema.Title != "ThingModel" {
		t.Fatalf("schema = %+v", schema)
	}

	id := schema.Properties.GetPair("id")
	if id == nil || id.Value.Type != "integer" {
		t.Error("expected integer schema for id")
	}
	tags := schema.Properties.GetPair("tags")
	if tags == nil || tags.Value.Type != "array" || tags.Value.Items == nil || tags.Value.Items.Type != "string" {
		t.Error("expected array-of-string schema for tags")
	}
	meta := schema.Properties.GetPair("meta")
	if meta == nil || meta.Value.Type != "object" {
		t.Error("expected object schema for meta")
	}
	gone := schema.Properties.GetPair("gone")
	if gone == nil || gone.Value.Type != "" {
		t.Error("expected unconstrained schema for null-observed field")
	}
}
