// Package jsonsrc reads the schema notation written as JSON.
//
//	{
//	  "type": "object",
//	  "properties": {
//	    "name": {"type": "string", "min_length": 1},
//	    "tags": {"type": "array", "items": "string"}
//	  },
//	  "required": ["name"]
//	}
//
// JSON has no identifiers or chars, so every JSON string becomes a string
// value. Numbers must be integers; null and object literals are rejected.
package jsonsrc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/reoring/schemac"
	"github.com/reoring/schemac/internal/logging"
)

// Options bundles front-end options.
type Options struct {
	// Compile is forwarded to schemac.Compile. RootSpan is filled in from the
	// document when left zero.
	Compile schemac.CompileOpt
	Logger  *slog.Logger
}

func pick(opts []Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	if o.Logger == nil {
		o.Logger = logging.Logger()
	}
	if o.Compile.Logger == nil {
		o.Compile.Logger = o.Logger
	}
	return o
}

// Parse converts a JSON document into compiler entries. Syntax errors come
// back as plain errors; notation errors as schemac compile errors.
func Parse(data []byte, opts ...Options) ([]schemac.Entry, error) {
	opt := pick(opts)
	entries, _, err := (&builder{r: newReader(data)}).document()
	if err != nil {
		return nil, err
	}
	opt.Logger.Debug("parsed json schema", "entries", len(entries))
	return entries, nil
}

// Compile parses a JSON document and compiles it.
func Compile(data []byte, opts ...Options) (*schemac.Schema, error) {
	opt := pick(opts)
	entries, span, err := (&builder{r: newReader(data)}).document()
	if err != nil {
		return nil, err
	}
	copt := opt.Compile
	if copt.RootSpan.IsZero() {
		copt.RootSpan = span
	}
	return schemac.Compile(entries, copt)
}

type builder struct {
	r *reader
}

func (b *builder) next() (token, error) {
	t, err := b.r.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return token{}, fmt.Errorf("jsonsrc: unexpected end of input: %w", io.ErrUnexpectedEOF)
		}
		return token{}, fmt.Errorf("jsonsrc: %w", err)
	}
	return t, nil
}

func (b *builder) document() ([]schemac.Entry, schemac.Span, error) {
	t, err := b.r.next()
	if errors.Is(err, io.EOF) {
		return nil, schemac.Span{}, nil
	}
	if err != nil {
		return nil, schemac.Span{}, fmt.Errorf("jsonsrc: %w", err)
	}
	if t.kind != tBeginObject {
		end, err := b.skipValue(t)
		if err != nil {
			return nil, schemac.Span{}, err
		}
		return nil, schemac.Span{}, schemac.WithPointer(&schemac.InvalidValueError{
			Keyword:   schemac.KeywordStruct,
			Reason:    "schema block must be an object",
			ValueSpan: schemac.Span{Start: t.span.Start, End: end},
		}, "/")
	}
	entries, end, err := b.block("/")
	if err != nil {
		return nil, schemac.Span{}, err
	}
	if _, err := b.r.next(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after the schema object")
		}
		return nil, schemac.Span{}, fmt.Errorf("jsonsrc: %w", err)
	}
	return entries, schemac.Span{Start: t.span.Start, End: end}, nil
}

// block reads keyword entries up to the '}' closing an already consumed '{'.
func (b *builder) block(ptr string) ([]schemac.Entry, schemac.Pos, error) {
	var entries []schemac.Entry
	for {
		key, err := b.next()
		if err != nil {
			return nil, schemac.Pos{}, err
		}
		if key.kind == tEndObject {
			return entries, key.span.End, nil
		}
		e, err := b.entry(key, ptr)
		if err != nil {
			return nil, schemac.Pos{}, err
		}
		entries = append(entries, e)
	}
}

func (b *builder) entry(key token, ptr string) (schemac.Entry, error) {
	kw, ok := schemac.LookupKeyword(key.str)
	if !ok {
		return schemac.Entry{}, schemac.WithPointer(&schemac.UnknownKeywordError{Name: key.str, Span: key.span}, ptr)
	}
	v, err := b.next()
	if err != nil {
		return schemac.Entry{}, err
	}
	if v.kind == tBeginObject {
		switch kw {
		case schemac.KeywordProperties:
			props, end, err := b.properties(ptr)
			if err != nil {
				return schemac.Entry{}, err
			}
			return schemac.Props(props, key.span, schemac.Span{Start: v.span.Start, End: end}), nil
		case schemac.KeywordItems, schemac.KeywordContains:
			block, end, err := b.block(schemac.JoinPointer(ptr, kw.String()))
			if err != nil {
				return schemac.Entry{}, err
			}
			return schemac.Nested(kw, block, key.span, schemac.Span{Start: v.span.Start, End: end}), nil
		}
		// The compiler rejects the block; its contents are skipped unread.
		end, err := b.skipValue(v)
		if err != nil {
			return schemac.Entry{}, err
		}
		return schemac.Nested(kw, nil, key.span, schemac.Span{Start: v.span.Start, End: end}), nil
	}

	tok, span, err := b.literal(kw, key.span, v)
	if err != nil {
		return schemac.Entry{}, schemac.WithPointer(err, ptr)
	}
	val, ok := schemac.ValueFromToken(tok)
	if !ok {
		return schemac.Entry{}, schemac.WithPointer(&schemac.InvalidValueError{
			Keyword: kw, Reason: "not a literal", KeywordSpan: key.span, ValueSpan: span,
		}, ptr)
	}
	return schemac.Literal(kw, val, key.span, span), nil
}

func (b *builder) properties(ptr string) ([]schemac.PropertyEntry, schemac.Pos, error) {
	base := schemac.JoinPointer(ptr, schemac.KeywordProperties.String())
	var props []schemac.PropertyEntry
	for {
		name, err := b.next()
		if err != nil {
			return nil, schemac.Pos{}, err
		}
		if name.kind == tEndObject {
			return props, name.span.End, nil
		}
		v, err := b.next()
		if err != nil {
			return nil, schemac.Pos{}, err
		}
		pe := schemac.PropertyEntry{Name: name.str, Span: name.span}
		switch v.kind {
		case tBeginObject:
			block, end, err := b.block(schemac.JoinPointer(base, name.str))
			if err != nil {
				return nil, schemac.Pos{}, err
			}
			pe.Block = block
			pe.BlockSpan = schemac.Span{Start: v.span.Start, End: end}
		case tString:
			pe.BlockSpan = v.span
			pe.Block = []schemac.Entry{
				schemac.Literal(schemac.KeywordType, schemac.String(v.str), v.span, v.span),
			}
		default:
			end, err := b.skipValue(v)
			if err != nil {
				return nil, schemac.Pos{}, err
			}
			return nil, schemac.Pos{}, schemac.WithPointer(&schemac.InvalidValueError{
				Keyword:     schemac.KeywordProperties,
				Reason:      fmt.Sprintf("property %q must be a schema block or a type name", name.str),
				KeywordSpan: name.span,
				ValueSpan:   schemac.Span{Start: v.span.Start, End: end},
			}, ptr)
		}
		props = append(props, pe)
	}
}

// literal reads the value starting at t as a literal token and returns the
// span it covers.
func (b *builder) literal(kw schemac.Keyword, kwSpan schemac.Span, t token) (schemac.Token, schemac.Span, error) {
	invalid := func(reason string, v schemac.Value) error {
		return &schemac.InvalidValueError{Keyword: kw, Value: v, Reason: reason, KeywordSpan: kwSpan, ValueSpan: t.span}
	}
	switch t.kind {
	case tString:
		return schemac.Token{Kind: schemac.TokenString, Text: t.str}, t.span, nil
	case tBool:
		return schemac.Token{Kind: schemac.TokenBool, Bool: t.b}, t.span, nil
	case tNumber:
		n, err := strconv.ParseInt(t.str, 10, 64)
		if err != nil {
			return schemac.Token{}, t.span, invalid("only integer numbers are supported", schemac.String(t.str))
		}
		return schemac.Token{Kind: schemac.TokenInt, Int: n}, t.span, nil
	case tNull:
		return schemac.Token{}, t.span, invalid("null is not a value", schemac.Ident("null"))
	case tBeginObject:
		return schemac.Token{}, t.span, invalid("object literals are not values", schemac.Value{})
	case tBeginArray:
		tok := schemac.Token{Kind: schemac.TokenArray}
		for {
			e, err := b.next()
			if err != nil {
				return schemac.Token{}, t.span, err
			}
			if e.kind == tEndArray {
				return tok, schemac.Span{Start: t.span.Start, End: e.span.End}, nil
			}
			et, _, err := b.literal(kw, kwSpan, e)
			if err != nil {
				return schemac.Token{}, t.span, err
			}
			tok.Elems = append(tok.Elems, et)
		}
	}
	return schemac.Token{Kind: schemac.TokenPunct}, t.span, nil
}

// skipValue consumes the rest of a value whose first token is t and returns
// where it ends.
func (b *builder) skipValue(t token) (schemac.Pos, error) {
	if t.kind != tBeginObject && t.kind != tBeginArray {
		return t.span.End, nil
	}
	depth := 1
	for depth > 0 {
		n, err := b.next()
		if err != nil {
			return schemac.Pos{}, err
		}
		switch n.kind {
		case tBeginObject, tBeginArray:
			depth++
		case tEndObject, tEndArray:
			depth--
			if depth == 0 {
				return n.span.End, nil
			}
		}
	}
	return t.span.End, nil
}
