package schemac

import (
	"fmt"
	"log/slog"

	"github.com/reoring/schemac/internal/logging"
)

// EntryForm tells the compiler what kind of value an Entry carries.
type EntryForm int

const (
	FormLiteral    EntryForm = iota // Value holds a literal.
	FormBlock                       // Block holds a nested schema block (items, contains).
	FormProperties                  // Properties holds named nested blocks.
)

// Entry is one keyword of a schema block as supplied by a front-end.
type Entry struct {
	Keyword     Keyword
	Form        EntryForm
	KeywordSpan Span
	ValueSpan   Span
	Value       Value
	Block       []Entry
	Properties  []PropertyEntry
}

// PropertyEntry is one named block under `properties`.
type PropertyEntry struct {
	Name  string
	Span  Span // the property name
	Block []Entry
	// BlockSpan covers the property's block, used when the block itself is
	// reported (missing type, nesting too deep).
	BlockSpan Span
}

// Literal builds a literal-valued entry.
func Literal(kw Keyword, v Value, kwSpan, valSpan Span) Entry {
	return Entry{Keyword: kw, Form: FormLiteral, Value: v, KeywordSpan: kwSpan, ValueSpan: valSpan}
}

// Nested builds an entry whose value is a nested schema block.
func Nested(kw Keyword, block []Entry, kwSpan, valSpan Span) Entry {
	return Entry{Keyword: kw, Form: FormBlock, Block: block, KeywordSpan: kwSpan, ValueSpan: valSpan}
}

// Props builds a `properties` entry.
func Props(props []PropertyEntry, kwSpan, valSpan Span) Entry {
	return Entry{Keyword: KeywordProperties, Form: FormProperties, Properties: props, KeywordSpan: kwSpan, ValueSpan: valSpan}
}

// CompileOpt bundles compilation options.
type CompileOpt struct {
	// RequireType reports *MissingTypeError for any block that never declares
	// a type. Off by default: untyped blocks serialize with type "null".
	RequireType bool
	// MaxDepth bounds nesting (root = 1). Zero means unlimited.
	MaxDepth int
	// RootSpan covers the whole root block, for errors about the block itself.
	RootSpan Span
	Logger   *slog.Logger
}

// Compile builds a schema tree from a front-end's entries. Entries are applied
// in order and compilation stops at the first error, which is always a
// CompileError carrying the spans of the offending keyword and value and the
// JSON Pointer of the block it belongs to. The returned tree belongs to the
// caller and is not modified further.
func Compile(entries []Entry, opts ...CompileOpt) (*Schema, error) {
	var opt CompileOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	c := &compiler{opt: opt, log: opt.Logger}
	if c.log == nil {
		c.log = logging.Logger()
	}
	root := NewSchema()
	if err := c.block(root, entries, pathRef{}, opt.RootSpan); err != nil {
		c.log.Debug("compile failed", "error", err)
		return nil, err
	}
	return root, nil
}

type compiler struct {
	opt CompileOpt
	log *slog.Logger
}

func (c *compiler) block(s *Schema, entries []Entry, p pathRef, span Span) error {
	if c.opt.MaxDepth > 0 && s.depth > c.opt.MaxDepth {
		return stamp(&InvalidValueError{
			Keyword:   KeywordStruct,
			Reason:    fmt.Sprintf("schema blocks nest deeper than %d levels", c.opt.MaxDepth),
			ValueSpan: span,
		}, p)
	}
	for _, e := range entries {
		if err := c.entry(s, e, p); err != nil {
			return stamp(err, p)
		}
	}
	if c.opt.RequireType && s.typ.IsUnset() {
		return stamp(&MissingTypeError{ValueSpan: span}, p)
	}
	c.log.Debug("compiled schema block", "pointer", p.Pointer(), "depth", s.depth, "type", s.typ.String(), "keywords", len(s.order))
	return nil
}

func (c *compiler) entry(s *Schema, e Entry, p pathRef) error {
	switch e.Form {
	case FormLiteral:
		return s.SetKeyword(e.Keyword, e.Value, e.KeywordSpan, e.ValueSpan)

	case FormBlock:
		// Legality comes first so the diagnostic points at the keyword, not
		// at something inside a block that should never have been written.
		if err := s.admit(e.Keyword, e.KeywordSpan, e.ValueSpan); err != nil {
			return err
		}
		if e.Keyword != KeywordItems && e.Keyword != KeywordContains {
			return &InvalidValueError{Keyword: e.Keyword, Reason: "does not take a schema block", KeywordSpan: e.KeywordSpan, ValueSpan: e.ValueSpan}
		}
		child := s.NewChild()
		if err := c.block(child, e.Block, p.Keyword(e.Keyword), e.ValueSpan); err != nil {
			return err
		}
		return s.AddChild(e.Keyword, child, e.KeywordSpan, e.ValueSpan)

	case FormProperties:
		if err := s.admit(e.Keyword, e.KeywordSpan, e.ValueSpan); err != nil {
			return err
		}
		if e.Keyword != KeywordProperties {
			return &InvalidValueError{Keyword: e.Keyword, Reason: "does not take named schema blocks", KeywordSpan: e.KeywordSpan, ValueSpan: e.ValueSpan}
		}
		props := make([]Property, 0, len(e.Properties))
		seen := make(map[string]Span, len(e.Properties))
		for _, pe := range e.Properties {
			if first, dup := seen[pe.Name]; dup {
				return &DuplicatePropertyError{Name: pe.Name, First: first, Second: pe.Span}
			}
			seen[pe.Name] = pe.Span
			child := s.NewChild()
			bs := pe.BlockSpan
			if bs.IsZero() {
				bs = pe.Span
			}
			if err := c.block(child, pe.Block, p.Keyword(KeywordProperties).Field(pe.Name), bs); err != nil {
				return err
			}
			props = append(props, Property{Name: pe.Name, Span: pe.Span, Schema: child})
		}
		return s.SetProperties(props, e.KeywordSpan, e.ValueSpan)
	}
	return &InvalidValueError{Keyword: e.Keyword, Reason: fmt.Sprintf("unknown entry form %d", e.Form), KeywordSpan: e.KeywordSpan, ValueSpan: e.ValueSpan}
}

// stamp records the block pointer unless a deeper block already did.
func stamp(err error, p pathRef) error {
	if ce, ok := AsCompileError(err); ok && ce.Pointer() == "" {
		return WithPointer(err, p.Pointer())
	}
	return err
}
