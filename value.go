package schemac

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ValueKind discriminates Value.
type ValueKind int

const (
	KindIdent ValueKind = iota // Bare identifier, possibly naming a symbol.
	KindString
	KindInt
	KindBool
	KindChar
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindArray:
		return "array"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a literal written in the notation: the value of default, const,
// and the elements of enum and examples. The zero Value is an empty ident.
type Value struct {
	kind  ValueKind
	text  string // ident name or string contents
	num   int64
	flag  bool
	char  rune
	elems []Value
}

func Ident(name string) Value    { return Value{kind: KindIdent, text: name} }
func String(s string) Value      { return Value{kind: KindString, text: s} }
func Int(n int64) Value          { return Value{kind: KindInt, num: n} }
func Bool(b bool) Value          { return Value{kind: KindBool, flag: b} }
func Char(r rune) Value          { return Value{kind: KindChar, char: r} }
func Array(elems ...Value) Value { return Value{kind: KindArray, elems: append([]Value(nil), elems...)} }

// Kind returns the variant.
func (v Value) Kind() ValueKind { return v.kind }

// AsIdent returns the identifier name when v is an ident.
func (v Value) AsIdent() (string, bool) { return v.text, v.kind == KindIdent }

// AsString returns the contents when v is a string.
func (v Value) AsString() (string, bool) { return v.text, v.kind == KindString }

// AsInt returns the number when v is an int.
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsBool returns the flag when v is a bool.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// AsChar returns the rune when v is a char.
func (v Value) AsChar() (rune, bool) { return v.char, v.kind == KindChar }

// Elems returns a copy of the elements when v is an array.
func (v Value) Elems() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return append([]Value(nil), v.elems...), true
}

// Text returns the textual payload of idents, strings and chars. Authors may
// write a title as an identifier or a quoted string; both mean the same text.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindIdent, KindString:
		return v.text, true
	case KindChar:
		return string(v.char), true
	}
	return "", false
}

// String renders v for diagnostics: idents by name, strings by contents,
// arrays as a bracketed comma-separated list of element renderings.
func (v Value) String() string {
	switch v.kind {
	case KindIdent, KindString:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindChar:
		return string(v.char)
	case KindArray:
		b := &strings.Builder{}
		b.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
		b.WriteByte(']')
		return b.String()
	}
	return ""
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindIdent, KindString:
		return v.text == o.text
	case KindInt:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindChar:
		return v.char == o.char
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON writes v without symbol resolution: idents become strings
// holding their name and chars become one-character strings.
func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.wire(nil)) }

// wire converts v into plain Go values for encoding, resolving idents through
// syms when given.
func (v Value) wire(syms *Symbols) any {
	switch v.kind {
	case KindIdent:
		if syms != nil {
			if r, ok := syms.Lookup(v.text); ok {
				return r.wire(nil)
			}
		}
		return v.text
	case KindString:
		return v.text
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindChar:
		return string(v.char)
	case KindArray:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.wire(syms)
		}
		return out
	}
	return nil
}

// TokenKind identifies a lexical token a front-end hands to ValueFromToken.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenString
	TokenInt
	TokenBool
	TokenChar
	TokenArray
	TokenPunct // delimiters and anything else that is not a literal
)

// Token is a lexical literal produced by a front-end.
type Token struct {
	Kind  TokenKind
	Text  string // ident name or string contents
	Int   int64
	Bool  bool
	Char  rune
	Elems []Token
}

// ValueFromToken maps a literal token to its Value. It reports false only for
// tokens that are not literals, or arrays containing such tokens.
func ValueFromToken(tok Token) (Value, bool) {
	switch tok.Kind {
	case TokenIdent:
		return Ident(tok.Text), true
	case TokenString:
		return String(tok.Text), true
	case TokenInt:
		return Int(tok.Int), true
	case TokenBool:
		return Bool(tok.Bool), true
	case TokenChar:
		return Char(tok.Char), true
	case TokenArray:
		elems := make([]Value, 0, len(tok.Elems))
		for _, e := range tok.Elems {
			ev, ok := ValueFromToken(e)
			if !ok {
				return Value{}, false
			}
			elems = append(elems, ev)
		}
		return Value{kind: KindArray, elems: elems}, true
	}
	return Value{}, false
}
