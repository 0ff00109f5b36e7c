package yamlsrc_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/schemac"
	yamlsrc "github.com/reoring/schemac/source/yaml"
)

func compile(t *testing.T, src string, opts ...yamlsrc.Options) (*schemac.Schema, error) {
	t.Helper()
	return yamlsrc.Compile([]byte(src), opts...)
}

func mustDoc(t *testing.T, s *schemac.Schema) map[string]any {
	t.Helper()
	b, err := schemac.Serialize(s)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	return m
}

// slice returns the source text a span covers.
func slice(src string, sp schemac.Span) string { return src[sp.Start.Offset:sp.End.Offset] }

func TestCompile_Person(t *testing.T) {
	src := `type: object
title: Person
properties:
  name:
    type: string
    min_length: 1
  tags:
    type: array
    items: string
required: [name]
`
	s, err := compile(t, src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	want := map[string]any{
		"type":  "object",
		"title": "Person",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": float64(1)},
			"tags": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []any{"name"},
	}
	if diff := cmp.Diff(want, mustDoc(t, s)); diff != "" {
		t.Fatalf("document (-want +got):\n%s", diff)
	}
	if d := s.Property("tags").Items().Depth(); d != 3 {
		t.Fatalf("items depth = %d", d)
	}
	if sp, ok := s.PropertySpan("name"); !ok || slice(src, sp) != "name" {
		t.Fatalf("property span = %+v", sp)
	}
}

func TestCompile_IllegalKeywordSpans(t *testing.T) {
	src := "type: string\nminimum: 3\n"
	_, err := compile(t, src)
	var ill *schemac.IllegalKeywordError
	if !errors.As(err, &ill) {
		t.Fatalf("expected IllegalKeywordError, got %v", err)
	}
	if ill.Keyword != schemac.KeywordMinimum || ill.Type != schemac.TypeString {
		t.Fatalf("got %+v", ill)
	}
	if ill.KeywordSpan.Start.Line != 2 || ill.KeywordSpan.Start.Column != 1 {
		t.Fatalf("keyword span = %+v", ill.KeywordSpan)
	}
	if got := slice(src, ill.KeywordSpan); got != "minimum" {
		t.Fatalf("keyword span covers %q", got)
	}
	if got := slice(src, ill.ValueSpan); got != "3" {
		t.Fatalf("value span covers %q", got)
	}
	if ill.Pointer() != "/" {
		t.Fatalf("pointer = %q", ill.Pointer())
	}
}

func TestCompile_NestedPointer(t *testing.T) {
	src := `type: object
properties:
  age:
    type: number
    pattern: "^[0-9]+$"
`
	_, err := compile(t, src)
	ce, ok := schemac.AsCompileError(err)
	if !ok || ce.Code() != schemac.CodeIllegalKeyword {
		t.Fatalf("expected illegal keyword, got %v", err)
	}
	if ce.Pointer() != "/properties/age" {
		t.Fatalf("pointer = %q", ce.Pointer())
	}
	if got := slice(src, ce.Spans().Value); got != `"^[0-9]+$"` {
		t.Fatalf("value span covers %q", got)
	}
}

func TestCompile_UnknownKeyword(t *testing.T) {
	src := "type: object\nproperties:\n  a:\n    type: number\n    minimun: 1\n"
	_, err := compile(t, src)
	var uk *schemac.UnknownKeywordError
	if !errors.As(err, &uk) {
		t.Fatalf("expected UnknownKeywordError, got %v", err)
	}
	if uk.Name != "minimun" || uk.Span.Start.Line != 5 || uk.Pointer() != "/properties/a" {
		t.Fatalf("got %+v pointer %q", uk, uk.Pointer())
	}
}

func TestCompile_DuplicateKeywordAcrossSpellings(t *testing.T) {
	src := "type: string\nmin_length: 1\nminLength: 2\n"
	_, err := compile(t, src)
	var dup *schemac.DuplicateKeywordError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeywordError, got %v", err)
	}
	if dup.First.Keyword.Start.Line != 2 || dup.Second.Keyword.Start.Line != 3 {
		t.Fatalf("first %v second %v", dup.First.Keyword, dup.Second.Keyword)
	}
}

func TestCompile_DuplicateProperty(t *testing.T) {
	src := "type: object\nproperties:\n  a: string\n  a: number\n"
	_, err := compile(t, src)
	var dup *schemac.DuplicatePropertyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicatePropertyError, got %v", err)
	}
	if dup.Name != "a" || dup.First.Start.Line != 3 || dup.Second.Start.Line != 4 {
		t.Fatalf("got %+v", dup)
	}
}

func TestParse_ValueKinds(t *testing.T) {
	src := `type: string
default: 'x'
enum: [RED, "green", 3, true, 'y', hello world]
`
	entries, err := yamlsrc.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if !entries[1].Value.Equal(schemac.Char('x')) {
		t.Fatalf("default = %s (%v)", entries[1].Value, entries[1].Value.Kind())
	}
	want := schemac.Array(
		schemac.Ident("RED"), schemac.String("green"), schemac.Int(3), schemac.Bool(true),
		schemac.Char('y'), schemac.String("hello world"),
	)
	if !entries[2].Value.Equal(want) {
		t.Fatalf("enum = %s", entries[2].Value)
	}
	if got := slice(src, entries[2].ValueSpan); !strings.HasPrefix(got, "[RED") || !strings.HasSuffix(got, "]") {
		t.Fatalf("flow sequence span covers %q", got)
	}
}

func TestParse_RejectedLiterals(t *testing.T) {
	cases := map[string]string{
		"float":  "type: number\nminimum: 1.5\n",
		"null":   "type: string\ndefault: ~\n",
		"object": "type: string\nenum: [{a: 1}]\n",
	}
	for name, src := range cases {
		_, err := yamlsrc.Parse([]byte(src))
		var inv *schemac.InvalidValueError
		if !errors.As(err, &inv) {
			t.Fatalf("%s: expected InvalidValueError, got %v", name, err)
		}
		if inv.KeywordSpan.Start.Line != 2 {
			t.Fatalf("%s: keyword span %+v", name, inv.KeywordSpan)
		}
	}
}

func TestCompile_BlockOnScalarKeywordNotRead(t *testing.T) {
	src := "type: string\ntitle:\n  bogus: 1\n"
	_, err := compile(t, src)
	var inv *schemac.InvalidValueError
	if !errors.As(err, &inv) || inv.Keyword != schemac.KeywordTitle {
		t.Fatalf("expected InvalidValueError on title, got %v", err)
	}
}

func TestCompile_RootMustBeMapping(t *testing.T) {
	_, err := compile(t, "- a\n- b\n")
	var inv *schemac.InvalidValueError
	if !errors.As(err, &inv) || inv.Keyword != schemac.KeywordStruct {
		t.Fatalf("got %v", err)
	}
}

func TestCompile_EmptyDocument(t *testing.T) {
	s, err := compile(t, "")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Type().IsUnset() {
		t.Fatalf("type = %s", s.Type())
	}
	_, err = compile(t, "", yamlsrc.Options{Compile: schemac.CompileOpt{RequireType: true}})
	var mt *schemac.MissingTypeError
	if !errors.As(err, &mt) {
		t.Fatalf("expected MissingTypeError, got %v", err)
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := compile(t, "type: [string\n")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if _, ok := schemac.AsCompileError(err); ok {
		t.Fatalf("syntax errors are not compile errors: %v", err)
	}
}

func TestCompile_Anchors(t *testing.T) {
	src := `type: object
properties:
  a: &str
    type: string
    max_length: 8
  b: *str
`
	s, err := compile(t, src)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := s.Property("b").MaxLength(); !ok || n != 8 {
		t.Fatalf("alias block maxLength = %d, %v", n, ok)
	}
}

func TestParseAll(t *testing.T) {
	src := "type: string\n---\ntype: number\nmaximum: 10\n---\ntype: array\nmin_items: -1\n"
	_, err := yamlsrc.ParseAll(strings.NewReader(src))
	var inv *schemac.InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "document 2:") {
		t.Fatalf("error does not name the document: %v", err)
	}
	if inv.ValueSpan.Start.Line != 7 {
		t.Fatalf("spans are stream-relative, got line %d", inv.ValueSpan.Start.Line)
	}

	schemas, err := yamlsrc.ParseAll(strings.NewReader("type: string\n---\ntype: number\n"))
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	for _, s := range schemas {
		types = append(types, s.Type().String())
	}
	if diff := cmp.Diff([]string{"string", "number"}, types); diff != "" {
		t.Fatalf("types (-want +got):\n%s", diff)
	}
}
