package yamlsrc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/reoring/schemac"
)

// builder turns yaml.Node trees into compiler entries. Node positions are
// line/column pairs; the builder maps them back to byte offsets in src.
type builder struct {
	src []byte
	ix  *schemac.LineIndex
}

func newBuilder(src []byte) *builder {
	return &builder{src: src, ix: schemac.NewLineIndex(src)}
}

func (b *builder) document(doc *yaml.Node) ([]schemac.Entry, schemac.Span, error) {
	n := doc
	if n.Kind == 0 {
		return nil, schemac.Span{}, nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, schemac.Span{}, nil
		}
		n = n.Content[0]
	}
	n = resolve(n)
	entries, err := b.block(n, "/")
	if err != nil {
		return nil, schemac.Span{}, err
	}
	return entries, b.span(n), nil
}

func (b *builder) block(n *yaml.Node, ptr string) ([]schemac.Entry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, schemac.WithPointer(&schemac.InvalidValueError{
			Keyword:   schemac.KeywordStruct,
			Reason:    "schema block must be a mapping",
			ValueSpan: b.span(n),
		}, ptr)
	}
	entries := make([]schemac.Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		e, err := b.entry(n.Content[i], resolve(n.Content[i+1]), ptr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (b *builder) entry(k, v *yaml.Node, ptr string) (schemac.Entry, error) {
	kwSpan := b.span(k)
	kw, ok := schemac.LookupKeyword(k.Value)
	if !ok || k.Kind != yaml.ScalarNode {
		return schemac.Entry{}, schemac.WithPointer(&schemac.UnknownKeywordError{Name: k.Value, Span: kwSpan}, ptr)
	}
	valSpan := b.span(v)

	if v.Kind == yaml.MappingNode {
		switch kw {
		case schemac.KeywordProperties:
			props, err := b.properties(v, ptr)
			if err != nil {
				return schemac.Entry{}, err
			}
			return schemac.Props(props, kwSpan, valSpan), nil
		case schemac.KeywordItems, schemac.KeywordContains:
			block, err := b.block(v, schemac.JoinPointer(ptr, kw.String()))
			if err != nil {
				return schemac.Entry{}, err
			}
			return schemac.Nested(kw, block, kwSpan, valSpan), nil
		}
		// The compiler rejects the block; its contents are never read.
		return schemac.Nested(kw, nil, kwSpan, valSpan), nil
	}

	tok, err := b.token(kw, kwSpan, v)
	if err != nil {
		return schemac.Entry{}, schemac.WithPointer(err, ptr)
	}
	val, ok := schemac.ValueFromToken(tok)
	if !ok {
		return schemac.Entry{}, schemac.WithPointer(&schemac.InvalidValueError{
			Keyword: kw, Reason: "not a literal", KeywordSpan: kwSpan, ValueSpan: valSpan,
		}, ptr)
	}
	return schemac.Literal(kw, val, kwSpan, valSpan), nil
}

func (b *builder) properties(n *yaml.Node, ptr string) ([]schemac.PropertyEntry, error) {
	base := schemac.JoinPointer(ptr, schemac.KeywordProperties.String())
	props := make([]schemac.PropertyEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], resolve(n.Content[i+1])
		pe := schemac.PropertyEntry{Name: k.Value, Span: b.span(k), BlockSpan: b.span(v)}
		switch {
		case v.Kind == yaml.MappingNode:
			block, err := b.block(v, schemac.JoinPointer(base, k.Value))
			if err != nil {
				return nil, err
			}
			pe.Block = block
		case v.Kind == yaml.ScalarNode && v.Tag == "!!str":
			pe.Block = []schemac.Entry{
				schemac.Literal(schemac.KeywordType, schemac.Ident(v.Value), pe.BlockSpan, pe.BlockSpan),
			}
		default:
			return nil, schemac.WithPointer(&schemac.InvalidValueError{
				Keyword:     schemac.KeywordProperties,
				Reason:      fmt.Sprintf("property %q must be a schema block or a type name", k.Value),
				KeywordSpan: pe.Span,
				ValueSpan:   pe.BlockSpan,
			}, ptr)
		}
		props = append(props, pe)
	}
	return props, nil
}

// token classifies a scalar or sequence node as a literal token.
func (b *builder) token(kw schemac.Keyword, kwSpan schemac.Span, n *yaml.Node) (schemac.Token, error) {
	invalid := func(reason string) error {
		return &schemac.InvalidValueError{Keyword: kw, Value: schemac.String(n.Value), Reason: reason, KeywordSpan: kwSpan, ValueSpan: b.span(n)}
	}
	switch n.Kind {
	case yaml.SequenceNode:
		tok := schemac.Token{Kind: schemac.TokenArray, Elems: make([]schemac.Token, 0, len(n.Content))}
		for _, c := range n.Content {
			et, err := b.token(kw, kwSpan, resolve(c))
			if err != nil {
				return schemac.Token{}, err
			}
			tok.Elems = append(tok.Elems, et)
		}
		return tok, nil
	case yaml.MappingNode:
		return schemac.Token{}, invalid("object literals are not values")
	case yaml.ScalarNode:
	default:
		return schemac.Token{Kind: schemac.TokenPunct, Text: n.Value}, nil
	}

	switch n.Tag {
	case "!!int":
		i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil {
			return schemac.Token{}, invalid("integer out of range")
		}
		return schemac.Token{Kind: schemac.TokenInt, Int: i}, nil
	case "!!bool":
		return schemac.Token{Kind: schemac.TokenBool, Bool: strings.EqualFold(n.Value, "true")}, nil
	case "!!float":
		return schemac.Token{}, invalid("only integer numbers are supported")
	case "!!null":
		return schemac.Token{}, invalid("null is not a value")
	}

	switch {
	case n.Style&yaml.SingleQuotedStyle != 0 && utf8.RuneCountInString(n.Value) == 1:
		r, _ := utf8.DecodeRuneInString(n.Value)
		return schemac.Token{Kind: schemac.TokenChar, Char: r}, nil
	case n.Style == 0 && isIdent(n.Value):
		return schemac.Token{Kind: schemac.TokenIdent, Text: n.Value}, nil
	}
	return schemac.Token{Kind: schemac.TokenString, Text: n.Value}, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// offset maps a yaml line/column (columns count characters) to a byte
// offset.
func (b *builder) offset(line, col int) int {
	off := b.ix.Offset(line, 1)
	if off < 0 {
		return len(b.src)
	}
	for i := 1; i < col && off < len(b.src) && b.src[off] != '\n'; i++ {
		_, size := utf8.DecodeRune(b.src[off:])
		off += size
	}
	return off
}

func (b *builder) span(n *yaml.Node) schemac.Span {
	start := b.offset(n.Line, n.Column)
	return b.ix.Span(start, b.end(n, start))
}

func (b *builder) end(n *yaml.Node, start int) int {
	switch n.Kind {
	case yaml.ScalarNode:
		return b.scalarEnd(n, start)
	case yaml.AliasNode:
		return start + 1 + len(n.Value)
	case yaml.MappingNode, yaml.SequenceNode:
		end := start
		if len(n.Content) > 0 {
			last := n.Content[len(n.Content)-1]
			end = b.end(last, b.offset(last.Line, last.Column))
		}
		if n.Style&yaml.FlowStyle != 0 {
			closer := byte(']')
			if n.Kind == yaml.MappingNode {
				closer = '}'
			}
			if i := bytes.IndexByte(b.src[end:], closer); i >= 0 {
				end += i + 1
			}
		}
		return end
	}
	return start
}

func (b *builder) scalarEnd(n *yaml.Node, start int) int {
	src := b.src
	switch {
	case n.Style&yaml.DoubleQuotedStyle != 0:
		for i := start + 1; i < len(src); i++ {
			switch src[i] {
			case '\\':
				i++
			case '"':
				return i + 1
			}
		}
		return len(src)
	case n.Style&yaml.SingleQuotedStyle != 0:
		for i := start + 1; i < len(src); i++ {
			if src[i] != '\'' {
				continue
			}
			if i+1 < len(src) && src[i+1] == '\'' {
				i++
				continue
			}
			return i + 1
		}
		return len(src)
	case n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		return start + 1
	}
	if bytes.HasPrefix(src[start:], []byte(n.Value)) {
		return start + len(n.Value)
	}
	if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
		return start + i
	}
	return len(src)
}
