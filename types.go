package schemac

import "strconv"

// Type is the schema kind a block declares. The zero value is TypeUnset,
// which is distinct from every real kind.
type Type int

const (
	TypeUnset Type = iota // No `type` keyword seen yet.
	TypeObject
	TypeString
	TypeArray
	TypeNumber
)

var typeNames = [...]string{
	TypeUnset:  "null",
	TypeObject: "object",
	TypeString: "string",
	TypeArray:  "array",
	TypeNumber: "number",
}

// String returns the canonical JSON Schema spelling.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// IsUnset reports whether t is the sentinel.
func (t Type) IsUnset() bool { return t == TypeUnset }

// Valid reports whether t is one of the declarable types.
func (t Type) Valid() bool { return t > TypeUnset && int(t) < len(typeNames) }

// MarshalJSON renders the canonical spelling.
func (t Type) MarshalJSON() ([]byte, error) { return strconv.AppendQuote(nil, t.String()), nil }

// ParseType resolves a declared type name. The sentinel is never returned:
// "null" is not a type an author may declare.
func ParseType(name string) (Type, bool) {
	switch name {
	case "object":
		return TypeObject, true
	case "string":
		return TypeString, true
	case "array":
		return TypeArray, true
	case "number":
		return TypeNumber, true
	}
	return TypeUnset, false
}

// Types lists the declarable types in catalog order.
func Types() []Type { return []Type{TypeObject, TypeString, TypeArray, TypeNumber} }
