package jsonsrc_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/schemac"
	jsonsrc "github.com/reoring/schemac/source/json"
)

func slice(src string, sp schemac.Span) string { return src[sp.Start.Offset:sp.End.Offset] }

func TestCompile_Person(t *testing.T) {
	src := `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "min_length": 1},
    "tags": {"type": "array", "items": "string", "unique_items": true},
    "nick": "string"
  },
  "required": ["name"]
}`
	s, err := jsonsrc.Compile([]byte(src))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out, err := schemac.Serialize(s)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": float64(1)},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "uniqueItems": true},
			"nick": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document (-want +got):\n%s", diff)
	}
	if sp, ok := s.PropertySpan("tags"); !ok || slice(src, sp) != `"tags"` {
		t.Fatalf("property span = %+v", sp)
	}
}

func TestCompile_IllegalKeywordSpans(t *testing.T) {
	src := "{\n  \"type\": \"string\",\n  \"minimum\": 3\n}"
	_, err := jsonsrc.Compile([]byte(src))
	var ill *schemac.IllegalKeywordError
	if !errors.As(err, &ill) {
		t.Fatalf("expected IllegalKeywordError, got %v", err)
	}
	if got := slice(src, ill.KeywordSpan); got != `"minimum"` {
		t.Fatalf("keyword span covers %q", got)
	}
	if got := slice(src, ill.ValueSpan); got != "3" {
		t.Fatalf("value span covers %q", got)
	}
	if ill.KeywordSpan.Start.Line != 3 || ill.KeywordSpan.Start.Column != 3 {
		t.Fatalf("keyword position = %s", ill.KeywordSpan.Start)
	}
}

func TestCompile_NestedPointerAndArraySpan(t *testing.T) {
	src := `{"type": "array", "items": {"type": "number", "enum": [1, 2], "pattern": "x"}}`
	_, err := jsonsrc.Compile([]byte(src))
	ce, ok := schemac.AsCompileError(err)
	if !ok || ce.Code() != schemac.CodeIllegalKeyword || ce.Pointer() != "/items" {
		t.Fatalf("got %v", err)
	}

	entries, err := jsonsrc.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	enum := entries[1].Block[1]
	if got := slice(src, enum.ValueSpan); got != "[1, 2]" {
		t.Fatalf("enum span covers %q", got)
	}
}

func TestParse_RejectedLiterals(t *testing.T) {
	cases := map[string]string{
		"float":  `{"type": "number", "minimum": 1.5}`,
		"null":   `{"type": "string", "default": null}`,
		"object": `{"type": "string", "enum": [{"a": 1}]}`,
	}
	for name, src := range cases {
		_, err := jsonsrc.Parse([]byte(src))
		var inv *schemac.InvalidValueError
		if !errors.As(err, &inv) {
			t.Fatalf("%s: expected InvalidValueError, got %v", name, err)
		}
	}
}

func TestCompile_UnknownKeyword(t *testing.T) {
	src := `{"type": "object", "properties": {"a": {"type": "string", "maxLen": 3}}}`
	_, err := jsonsrc.Compile([]byte(src))
	var uk *schemac.UnknownKeywordError
	if !errors.As(err, &uk) {
		t.Fatalf("expected UnknownKeywordError, got %v", err)
	}
	if uk.Name != "maxLen" || uk.Pointer() != "/properties/a" || slice(src, uk.Span) != `"maxLen"` {
		t.Fatalf("got %+v pointer %q", uk, uk.Pointer())
	}
}

func TestCompile_DuplicateKeys(t *testing.T) {
	_, err := jsonsrc.Compile([]byte(`{"type": "string", "title": "a", "title": "b"}`))
	var dup *schemac.DuplicateKeywordError
	if !errors.As(err, &dup) || dup.Keyword != schemac.KeywordTitle {
		t.Fatalf("expected duplicate title, got %v", err)
	}
	if dup.First.Keyword.Start.Offset >= dup.Second.Keyword.Start.Offset {
		t.Fatalf("first %v second %v", dup.First.Keyword, dup.Second.Keyword)
	}

	_, err = jsonsrc.Compile([]byte(`{"type": "object", "properties": {"a": "string", "a": "number"}}`))
	var dp *schemac.DuplicatePropertyError
	if !errors.As(err, &dp) || dp.Name != "a" {
		t.Fatalf("expected duplicate property, got %v", err)
	}
}

func TestCompile_BlockOnScalarKeywordSkipped(t *testing.T) {
	_, err := jsonsrc.Compile([]byte(`{"type": "string", "description": {"x": [1, {"y": 2}]}, "title": "t"}`))
	var inv *schemac.InvalidValueError
	if !errors.As(err, &inv) || inv.Keyword != schemac.KeywordDescription {
		t.Fatalf("expected invalid description, got %v", err)
	}
}

func TestCompile_Malformed(t *testing.T) {
	for _, src := range []string{`{"type": "string"`, `{"type": "string"} {}`} {
		_, err := jsonsrc.Compile([]byte(src))
		if err == nil {
			t.Fatalf("%s: expected error", src)
		}
		if _, ok := schemac.AsCompileError(err); ok {
			t.Fatalf("%s: syntax errors are not compile errors: %v", src, err)
		}
	}

	_, err := jsonsrc.Compile([]byte(`["type"]`))
	var inv *schemac.InvalidValueError
	if !errors.As(err, &inv) || inv.Keyword != schemac.KeywordStruct {
		t.Fatalf("root array: got %v", err)
	}
}

func TestCompile_EmptyInput(t *testing.T) {
	s, err := jsonsrc.Compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Type().IsUnset() || len(s.Keywords()) != 0 {
		t.Fatalf("expected empty root, got %v", s.Keywords())
	}
}
