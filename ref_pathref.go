package schemac

import "strings"

// pathRef builds the JSON Pointer of a schema block inside the compiled
// document, e.g. /properties/address/items.
type pathRef struct {
	parts []string
}

func (p pathRef) Field(name string) pathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pathRef) Keyword(k Keyword) pathRef { return p.Field(k.String()) }

func (p pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// JoinPointer appends reference tokens to an already escaped JSON Pointer,
// escaping each token. Front-ends use it to stamp the errors they raise.
func JoinPointer(base string, tokens ...string) string {
	var p pathRef
	if base != "" && base != "/" {
		p.parts = strings.Split(strings.TrimPrefix(base, "/"), "/")
	}
	for _, t := range tokens {
		p = p.Field(t)
	}
	return p.Pointer()
}
