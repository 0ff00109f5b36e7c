package jsonsrc

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/schemac"
)

type tokKind int

const (
	tBeginObject tokKind = iota
	tEndObject
	tBeginArray
	tEndArray
	tString
	tNumber
	tBool
	tNull
)

type token struct {
	kind tokKind
	str  string // string contents or number text
	b    bool
	span schemac.Span
}

// reader pulls tokens from a go-json Decoder and locates each one in the
// source. The decoder validates and unescapes; the cursor tracks where the
// token text sits so diagnostics can point at it.
type reader struct {
	dec *json.Decoder
	src []byte
	ix  *schemac.LineIndex
	pos int
}

func newReader(src []byte) *reader {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	return &reader{dec: dec, src: src, ix: schemac.NewLineIndex(src)}
}

func (r *reader) next() (token, error) {
	raw, err := r.dec.Token()
	if err != nil {
		return token{}, err
	}
	start := r.skip(r.pos)
	end := r.tokenEnd(start)
	r.pos = end

	t := token{span: r.ix.Span(start, end)}
	switch v := raw.(type) {
	case json.Delim:
		switch v {
		case '{':
			t.kind = tBeginObject
		case '}':
			t.kind = tEndObject
		case '[':
			t.kind = tBeginArray
		case ']':
			t.kind = tEndArray
		}
	case string:
		t.kind, t.str = tString, v
	case json.Number:
		t.kind, t.str = tNumber, string(v)
	case float64:
		t.kind, t.str = tNumber, strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		t.kind, t.b = tBool, v
	case nil:
		t.kind = tNull
	}
	return t, nil
}

// skip advances past whitespace and the separators the decoder consumes
// silently.
func (r *reader) skip(i int) int {
	for i < len(r.src) {
		switch r.src[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
		default:
			return i
		}
	}
	return i
}

func (r *reader) tokenEnd(start int) int {
	src := r.src
	if start >= len(src) {
		return start
	}
	switch src[start] {
	case '{', '}', '[', ']':
		return start + 1
	case '"':
		for i := start + 1; i < len(src); i++ {
			switch src[i] {
			case '\\':
				i++
			case '"':
				return i + 1
			}
		}
		return len(src)
	}
	i := start
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\r', '\n', ',', ':', ']', '}':
			return i
		}
		i++
	}
	return i
}
