package schemac

import (
	"fmt"
	"sort"
)

// Schema is one compiled schema block, root or nested. A Schema is mutated
// only through its setters while it is being compiled; afterwards it is read
// through the accessors and never changes. Children are owned by their parent.
type Schema struct {
	typ   Type
	depth int

	spans map[Keyword]SpanPair
	order []Keyword

	title       string
	description string
	def         Value
	examples    []string
	enum        []Value
	constValue  Value

	properties map[string]*Schema
	propSpans  map[string]Span
	required   []string

	minLength uint64
	maxLength uint64
	pattern   string
	format    Format

	minimum uint64
	maximum uint64

	items       *Schema
	minItems    uint64
	maxItems    uint64
	uniqueItems bool
	contains    *Schema
}

// Property is one named child passed to SetProperties.
type Property struct {
	Name   string
	Span   Span // where the property name was written
	Schema *Schema
}

// NewSchema returns an empty root block: no type, depth 1.
func NewSchema() *Schema { return &Schema{depth: 1, spans: map[Keyword]SpanPair{}} }

// NewChild returns an empty block one level below s. It is not attached to s
// until passed to AddChild or SetProperties.
func (s *Schema) NewChild() *Schema {
	c := NewSchema()
	c.depth = s.depth + 1
	return c
}

// SetType declares the block's type. Declaring a type twice fails with
// *DuplicateKeywordError whatever the second type is; TypeUnset or a value
// outside the catalog fails with *InvalidValueError.
func (s *Schema) SetType(t Type, kwSpan, valSpan Span) error {
	if err := s.admitType(kwSpan, valSpan); err != nil {
		return err
	}
	if !t.Valid() {
		return &InvalidValueError{
			Keyword:     KeywordType,
			Value:       String(t.String()),
			Reason:      "must be one of object, string, array, number",
			KeywordSpan: kwSpan,
			ValueSpan:   valSpan,
		}
	}
	s.typ = t
	s.record(KeywordType, kwSpan, valSpan)
	return nil
}

// SetKeyword populates a literal-valued keyword. It fails with
// *IllegalKeywordError when kw is neither generic nor legal for the declared
// type, *DuplicateKeywordError when kw is already populated, and
// *InvalidValueError when v cannot represent kw. The node is left unchanged on
// failure.
//
// `type` is routed through SetType. `items` and `contains` accept a type name
// as shorthand for a block holding only that type.
func (s *Schema) SetKeyword(kw Keyword, v Value, kwSpan, valSpan Span) error {
	invalid := func(reason string) error {
		return &InvalidValueError{Keyword: kw, Value: v, Reason: reason, KeywordSpan: kwSpan, ValueSpan: valSpan}
	}
	if kw == KeywordType {
		if err := s.admitType(kwSpan, valSpan); err != nil {
			return err
		}
		name, _ := v.Text()
		t, ok := ParseType(name)
		if !ok {
			return invalid("must be one of object, string, array, number")
		}
		return s.SetType(t, kwSpan, valSpan)
	}
	if err := s.admit(kw, kwSpan, valSpan); err != nil {
		return err
	}
	if kw.TakesBlock() {
		if kw == KeywordProperties {
			return invalid("must be a mapping of property names to schema blocks")
		}
		name, _ := v.Text()
		t, ok := ParseType(name)
		if !ok {
			return invalid("must be a schema block or a type name")
		}
		child := s.NewChild()
		if err := child.SetType(t, valSpan, valSpan); err != nil {
			return err
		}
		return s.AddChild(kw, child, kwSpan, valSpan)
	}

	switch kw {
	case KeywordTitle, KeywordDescription, KeywordPattern:
		text, ok := v.Text()
		if !ok {
			return invalid("must be a string")
		}
		switch kw {
		case KeywordTitle:
			s.title = text
		case KeywordDescription:
			s.description = text
		default:
			s.pattern = text
		}
	case KeywordDefault:
		s.def = v
	case KeywordConst:
		s.constValue = v
	case KeywordEnum:
		elems, ok := v.Elems()
		if !ok {
			return invalid("must be an array")
		}
		s.enum = elems
	case KeywordExamples, KeywordRequired:
		texts, reason := textElems(v)
		if reason != "" {
			return invalid(reason)
		}
		if kw == KeywordExamples {
			s.examples = texts
		} else {
			s.required = texts
		}
	case KeywordMinLength, KeywordMaxLength, KeywordMinimum, KeywordMaximum, KeywordMinItems, KeywordMaxItems:
		n, ok := v.AsInt()
		if !ok || n < 0 {
			return invalid("must be a non-negative integer")
		}
		*s.bound(kw) = uint64(n)
	case KeywordUniqueItems:
		b, ok := v.AsBool()
		if !ok {
			return invalid("must be true or false")
		}
		s.uniqueItems = b
	case KeywordFormat:
		name, _ := v.Text()
		f, ok := ParseFormat(name)
		if !ok {
			return invalid("unknown format")
		}
		s.format = f
	default:
		return invalid("unsupported keyword")
	}
	s.record(kw, kwSpan, valSpan)
	return nil
}

// AddChild attaches a nested block under items or contains, transferring
// ownership of child to s. child's depth is re-based below s.
func (s *Schema) AddChild(kw Keyword, child *Schema, kwSpan, valSpan Span) error {
	if err := s.admit(kw, kwSpan, valSpan); err != nil {
		return err
	}
	if kw != KeywordItems && kw != KeywordContains {
		return &InvalidValueError{Keyword: kw, Reason: "does not take a single schema block", KeywordSpan: kwSpan, ValueSpan: valSpan}
	}
	if child == nil {
		return &InvalidValueError{Keyword: kw, Reason: "missing schema block", KeywordSpan: kwSpan, ValueSpan: valSpan}
	}
	child.rebase(s.depth + 1)
	if kw == KeywordItems {
		s.items = child
	} else {
		s.contains = child
	}
	s.record(kw, kwSpan, valSpan)
	return nil
}

// SetProperties attaches the named children of an object block. Names must be
// unique; a repeated name fails with *DuplicatePropertyError.
func (s *Schema) SetProperties(props []Property, kwSpan, valSpan Span) error {
	if err := s.admit(KeywordProperties, kwSpan, valSpan); err != nil {
		return err
	}
	seen := make(map[string]Span, len(props))
	for _, p := range props {
		if first, dup := seen[p.Name]; dup {
			return &DuplicatePropertyError{Name: p.Name, First: first, Second: p.Span}
		}
		if p.Schema == nil {
			return &InvalidValueError{Keyword: KeywordStruct, Value: String(p.Name), Reason: "missing schema block", KeywordSpan: p.Span, ValueSpan: p.Span}
		}
		seen[p.Name] = p.Span
	}
	s.properties = make(map[string]*Schema, len(props))
	s.propSpans = seen
	for _, p := range props {
		p.Schema.rebase(s.depth + 1)
		s.properties[p.Name] = p.Schema
	}
	s.record(KeywordProperties, kwSpan, valSpan)
	return nil
}

// admit runs the legality and duplicate checks shared by every setter.
func (s *Schema) admit(kw Keyword, kwSpan, valSpan Span) error {
	if !kw.LegalFor(s.typ) {
		return &IllegalKeywordError{Keyword: kw, Type: s.typ, KeywordSpan: kwSpan, ValueSpan: valSpan}
	}
	if first, dup := s.spans[kw]; dup {
		return &DuplicateKeywordError{Keyword: kw, First: first, Second: SpanPair{Keyword: kwSpan, Value: valSpan}}
	}
	return nil
}

func (s *Schema) admitType(kwSpan, valSpan Span) error {
	if first, dup := s.spans[KeywordType]; dup {
		return &DuplicateKeywordError{Keyword: KeywordType, First: first, Second: SpanPair{Keyword: kwSpan, Value: valSpan}}
	}
	return nil
}

func (s *Schema) record(kw Keyword, kwSpan, valSpan Span) {
	if s.spans == nil {
		s.spans = map[Keyword]SpanPair{}
	}
	s.spans[kw] = SpanPair{Keyword: kwSpan, Value: valSpan}
	s.order = append(s.order, kw)
}

func (s *Schema) bound(kw Keyword) *uint64 {
	switch kw {
	case KeywordMinLength:
		return &s.minLength
	case KeywordMaxLength:
		return &s.maxLength
	case KeywordMinimum:
		return &s.minimum
	case KeywordMaximum:
		return &s.maximum
	case KeywordMinItems:
		return &s.minItems
	case KeywordMaxItems:
		return &s.maxItems
	}
	return nil
}

func (s *Schema) rebase(depth int) {
	s.depth = depth
	for _, c := range s.children() {
		c.rebase(depth + 1)
	}
}

// textElems unpacks an array of strings. Repeated entries are kept as written.
func textElems(v Value) ([]string, string) {
	elems, ok := v.Elems()
	if !ok {
		return nil, "must be an array of strings"
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		t, ok := e.Text()
		if !ok {
			return nil, "must be an array of strings"
		}
		out = append(out, t)
	}
	return out, ""
}

// ---- read accessors ----

// Type returns the declared type (TypeUnset when none was declared).
func (s *Schema) Type() Type { return s.typ }

// Depth is 1 for the root and one more than the parent for every child.
func (s *Schema) Depth() int { return s.depth }

// Has reports whether kw was populated.
func (s *Schema) Has(kw Keyword) bool {
	_, ok := s.spans[kw]
	return ok
}

// Keywords returns the populated keywords in the order they were set.
func (s *Schema) Keywords() []Keyword { return append([]Keyword(nil), s.order...) }

// Spans returns where kw and its value were written.
func (s *Schema) Spans(kw Keyword) (SpanPair, bool) {
	sp, ok := s.spans[kw]
	return sp, ok
}

func (s *Schema) Title() (string, bool)       { return s.title, s.Has(KeywordTitle) }
func (s *Schema) Description() (string, bool) { return s.description, s.Has(KeywordDescription) }
func (s *Schema) Default() (Value, bool)      { return s.def, s.Has(KeywordDefault) }
func (s *Schema) Const() (Value, bool)        { return s.constValue, s.Has(KeywordConst) }
func (s *Schema) Pattern() (string, bool)     { return s.pattern, s.Has(KeywordPattern) }
func (s *Schema) Format() (Format, bool)      { return s.format, s.Has(KeywordFormat) }
func (s *Schema) MinLength() (uint64, bool)   { return s.minLength, s.Has(KeywordMinLength) }
func (s *Schema) MaxLength() (uint64, bool)   { return s.maxLength, s.Has(KeywordMaxLength) }
func (s *Schema) Minimum() (uint64, bool)     { return s.minimum, s.Has(KeywordMinimum) }
func (s *Schema) Maximum() (uint64, bool)     { return s.maximum, s.Has(KeywordMaximum) }
func (s *Schema) MinItems() (uint64, bool)    { return s.minItems, s.Has(KeywordMinItems) }
func (s *Schema) MaxItems() (uint64, bool)    { return s.maxItems, s.Has(KeywordMaxItems) }
func (s *Schema) UniqueItems() (bool, bool)   { return s.uniqueItems, s.Has(KeywordUniqueItems) }
func (s *Schema) Items() *Schema              { return s.items }
func (s *Schema) Contains() *Schema           { return s.contains }

// Examples returns a copy of the examples list.
func (s *Schema) Examples() ([]string, bool) {
	return append([]string(nil), s.examples...), s.Has(KeywordExamples)
}

// Enum returns a copy of the enum members.
func (s *Schema) Enum() ([]Value, bool) {
	return append([]Value(nil), s.enum...), s.Has(KeywordEnum)
}

// Required returns a copy of the required property names.
func (s *Schema) Required() ([]string, bool) {
	return append([]string(nil), s.required...), s.Has(KeywordRequired)
}

// Properties returns the property names in sorted order.
func (s *Schema) Properties() []string {
	names := make([]string, 0, len(s.properties))
	for n := range s.properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Property returns the child block declared under name.
func (s *Schema) Property(name string) *Schema { return s.properties[name] }

// PropertySpan returns where the property name was written.
func (s *Schema) PropertySpan(name string) (Span, bool) {
	sp, ok := s.propSpans[name]
	return sp, ok
}

func (s *Schema) children() []*Schema {
	var out []*Schema
	for _, n := range s.Properties() {
		out = append(out, s.properties[n])
	}
	if s.items != nil {
		out = append(out, s.items)
	}
	if s.contains != nil {
		out = append(out, s.contains)
	}
	return out
}

// Walk visits s and its descendants depth-first (properties by name, then
// items, then contains) with the JSON Pointer of each block. Returning false
// from fn skips that block's children.
func (s *Schema) Walk(fn func(pointer string, s *Schema) bool) {
	s.walk(pathRef{}, fn)
}

func (s *Schema) walk(p pathRef, fn func(string, *Schema) bool) {
	if !fn(p.Pointer(), s) {
		return
	}
	for _, n := range s.Properties() {
		s.properties[n].walk(p.Keyword(KeywordProperties).Field(n), fn)
	}
	if s.items != nil {
		s.items.walk(p.Keyword(KeywordItems), fn)
	}
	if s.contains != nil {
		s.contains.walk(p.Keyword(KeywordContains), fn)
	}
}

// Check verifies the tree's internal invariants: every populated keyword has
// spans and is legal for the declared type, and every child sits exactly one
// level below its parent.
func (s *Schema) Check() error {
	var err error
	s.Walk(func(ptr string, n *Schema) bool {
		if err != nil {
			return false
		}
		if len(n.order) != len(n.spans) {
			err = fmt.Errorf("schemac: %s: %d keywords recorded with %d span pairs", ptr, len(n.order), len(n.spans))
			return false
		}
		for _, kw := range n.order {
			if _, ok := n.spans[kw]; !ok {
				err = fmt.Errorf("schemac: %s: keyword %q has no spans", ptr, kw)
				return false
			}
			if !kw.LegalFor(n.typ) {
				err = fmt.Errorf("schemac: %s: keyword %q is not legal for type %q", ptr, kw, n.typ)
				return false
			}
		}
		for _, c := range n.children() {
			if c.depth != n.depth+1 {
				err = fmt.Errorf("schemac: %s: child depth %d under depth %d", ptr, c.depth, n.depth)
				return false
			}
		}
		return true
	})
	return err
}
