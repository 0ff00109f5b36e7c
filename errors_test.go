package schemac_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/schemac"
	"github.com/reoring/schemac/i18n"
)

func TestToIssue_IllegalKeyword(t *testing.T) {
	s := newTyped(t, schemac.TypeString)
	err := s.SetKeyword(schemac.KeywordMinimum, schemac.Int(3), sp(4), vsp(4))
	err = schemac.WithPointer(err, "/properties/name")

	iss, ok := schemac.ToIssue(err)
	if !ok {
		t.Fatalf("expected compile error, got %v", err)
	}
	want := schemac.Issue{
		Path:    "/properties/name",
		Code:    schemac.CodeIllegalKeyword,
		Message: "keyword minimum is not allowed for type string",
		Line:    4,
		Column:  sp(4).Start.Column,
		Offset:  sp(4).Start.Offset,
		Params:  map[string]any{"keyword": "minimum", "type": "string"},
	}
	if diff := cmp.Diff(want, iss); diff != "" {
		t.Fatalf("issue (-want +got):\n%s", diff)
	}
}

func TestToIssue_Localized(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")

	iss, ok := schemac.ToIssue(&schemac.MissingTypeError{ValueSpan: vsp(2)})
	if !ok {
		t.Fatal("expected issue")
	}
	if iss.Message != "スキーマに型が指定されていません" || iss.Params != nil {
		t.Fatalf("got %+v", iss)
	}
	if iss.Line != 2 {
		t.Fatalf("missing type reports the value span, got line %d", iss.Line)
	}
}

func TestToIssue_WrappedAndForeign(t *testing.T) {
	inner := &schemac.UnknownKeywordError{Name: "minimun", Span: sp(3)}
	wrapped := fmt.Errorf("front-end: %w", inner)
	schemac.WithPointer(wrapped, "/items")
	if inner.Pointer() != "/items" {
		t.Fatalf("pointer not stamped through wrapping: %q", inner.Pointer())
	}
	iss, ok := schemac.ToIssue(wrapped)
	if !ok || iss.Code != schemac.CodeUnknownKeyword || iss.Message != "unknown keyword minimun" {
		t.Fatalf("got %+v, %v", iss, ok)
	}

	if _, ok := schemac.ToIssue(errors.New("io failure")); ok {
		t.Fatalf("foreign errors have no issue form")
	}
	if _, ok := schemac.ToIssue(nil); ok {
		t.Fatalf("nil has no issue form")
	}
}

func TestCompileError_Spans(t *testing.T) {
	first := schemac.SpanPair{Keyword: sp(1), Value: vsp(1)}
	second := schemac.SpanPair{Keyword: sp(5), Value: vsp(5)}
	dup := &schemac.DuplicateKeywordError{Keyword: schemac.KeywordTitle, First: first, Second: second}
	if dup.Spans() != second {
		t.Fatalf("duplicate reports the second occurrence")
	}
	ill := &schemac.IllegalKeywordError{Keyword: schemac.KeywordPattern, Type: schemac.TypeNumber, KeywordSpan: sp(2), ValueSpan: vsp(2)}
	if got := ill.Spans(); got.Keyword != sp(2) || got.Value != vsp(2) {
		t.Fatalf("illegal spans = %+v", got)
	}
	var ce schemac.CompileError = ill
	if ce.Code() != "illegal_keyword" || ce.Error() == "" {
		t.Fatalf("code = %q", ce.Code())
	}
}
