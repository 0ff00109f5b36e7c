package schemac

import (
	"errors"
	"fmt"

	"github.com/reoring/schemac/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDuplicateKeyword  = "duplicate_keyword"
	CodeIllegalKeyword    = "illegal_keyword"
	CodeMissingType       = "missing_type"
	CodeInvalidValue      = "invalid_value"
	CodeUnknownKeyword    = "unknown_keyword"
	CodeDuplicateProperty = "duplicate_property"
)

// CompileError is implemented by every error the compiler and the schema tree
// report. Spans locates the offending keyword and value; Pointer is the JSON
// Pointer of the schema block that failed ("/" for the root, "" when the
// error came straight from a node setter).
type CompileError interface {
	error
	Code() string
	Spans() SpanPair
	Pointer() string
}

// block carries the pointer of the failing block; the compiler fills it in.
type block struct {
	Path string
}

func (b block) Pointer() string      { return b.Path }
func (b *block) setPath(path string) { b.Path = path }

// DuplicateKeywordError reports a keyword set twice in the same block, with
// both occurrences.
type DuplicateKeywordError struct {
	block
	Keyword Keyword
	First   SpanPair
	Second  SpanPair
}

func (e *DuplicateKeywordError) Error() string {
	return fmt.Sprintf("duplicate keyword %q at %s (first at %s)", e.Keyword, e.Second.Keyword, e.First.Keyword)
}
func (e *DuplicateKeywordError) Code() string    { return CodeDuplicateKeyword }
func (e *DuplicateKeywordError) Spans() SpanPair { return e.Second }

// IllegalKeywordError reports a keyword that is not legal for the block's
// declared type at the time it was seen. Type is TypeUnset when the keyword
// came before any `type`.
type IllegalKeywordError struct {
	block
	Keyword     Keyword
	Type        Type
	KeywordSpan Span
	ValueSpan   Span
}

func (e *IllegalKeywordError) Error() string {
	if e.Type.IsUnset() {
		return fmt.Sprintf("keyword %q at %s requires a declared type", e.Keyword, e.KeywordSpan)
	}
	return fmt.Sprintf("keyword %q at %s is not allowed for type %q", e.Keyword, e.KeywordSpan, e.Type)
}
func (e *IllegalKeywordError) Code() string { return CodeIllegalKeyword }
func (e *IllegalKeywordError) Spans() SpanPair {
	return SpanPair{Keyword: e.KeywordSpan, Value: e.ValueSpan}
}

// MissingTypeError reports a block that never declared a type. It is only
// produced when the caller asks for it (CompileOpt.RequireType).
type MissingTypeError struct {
	block
	ValueSpan Span
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("schema block at %s has no type", e.ValueSpan)
}
func (e *MissingTypeError) Code() string    { return CodeMissingType }
func (e *MissingTypeError) Spans() SpanPair { return SpanPair{Value: e.ValueSpan} }

// InvalidValueError reports a value that cannot populate its keyword, such as
// a negative minLength or an unknown format name.
type InvalidValueError struct {
	block
	Keyword     Keyword
	Value       Value
	Reason      string
	KeywordSpan Span
	ValueSpan   Span
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %q at %s: %s", e.Keyword, e.ValueSpan, e.Reason)
}
func (e *InvalidValueError) Code() string { return CodeInvalidValue }
func (e *InvalidValueError) Spans() SpanPair {
	return SpanPair{Keyword: e.KeywordSpan, Value: e.ValueSpan}
}

// UnknownKeywordError is raised by front-ends for keys that are not in the
// keyword catalog.
type UnknownKeywordError struct {
	block
	Name string
	Span Span
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("unknown keyword %q at %s", e.Name, e.Span)
}
func (e *UnknownKeywordError) Code() string    { return CodeUnknownKeyword }
func (e *UnknownKeywordError) Spans() SpanPair { return SpanPair{Keyword: e.Span} }

// DuplicatePropertyError reports a property name declared twice under one
// `properties` keyword.
type DuplicatePropertyError struct {
	block
	Name   string
	First  Span
	Second Span
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("duplicate property %q at %s (first at %s)", e.Name, e.Second, e.First)
}
func (e *DuplicatePropertyError) Code() string    { return CodeDuplicateProperty }
func (e *DuplicatePropertyError) Spans() SpanPair { return SpanPair{Keyword: e.Second} }

// AsCompileError extracts a CompileError using errors.As internally.
func AsCompileError(err error) (CompileError, bool) {
	if err == nil {
		return nil, false
	}
	var ce CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// WithPointer stamps the block pointer onto a compile error. Front-ends use it
// for errors they raise themselves; other errors pass through unchanged.
func WithPointer(err error, pointer string) error {
	var ps interface{ setPath(string) }
	if errors.As(err, &ps) {
		ps.setPath(pointer)
	}
	return err
}

// Issue is the flat, serializable form of a compile error, suitable for
// machine-readable output.
type Issue struct {
	Path    string         `json:"path"` // JSON Pointer of the failing block.
	Code    string         `json:"code"` // One of the codes listed above.
	Message string         `json:"message"`
	Line    int            `json:"line,omitempty"`
	Column  int            `json:"column,omitempty"`
	Offset  int            `json:"offset"`
	Params  map[string]any `json:"params,omitempty"`
}

// ToIssue flattens a compile error. Message is localized through i18n.
func ToIssue(err error) (Issue, bool) {
	ce, ok := AsCompileError(err)
	if !ok {
		return Issue{}, false
	}
	params := map[string]any{}
	data := map[string]string{}
	switch e := ce.(type) {
	case *DuplicateKeywordError:
		params["keyword"] = e.Keyword.String()
		params["first"] = e.First.Keyword.String()
	case *IllegalKeywordError:
		params["keyword"] = e.Keyword.String()
		params["type"] = e.Type.String()
	case *InvalidValueError:
		params["keyword"] = e.Keyword.String()
		params["value"] = e.Value.String()
		params["reason"] = e.Reason
	case *UnknownKeywordError:
		params["keyword"] = e.Name
	case *DuplicatePropertyError:
		params["property"] = e.Name
		params["first"] = e.First.String()
	}
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	sp := ce.Spans()
	at := sp.Keyword
	if at.IsZero() {
		at = sp.Value
	}
	if len(params) == 0 {
		params = nil
	}
	return Issue{
		Path:    ce.Pointer(),
		Code:    ce.Code(),
		Message: i18n.T(ce.Code(), data),
		Line:    at.Start.Line,
		Column:  at.Start.Column,
		Offset:  at.Start.Offset,
		Params:  params,
	}, true
}
