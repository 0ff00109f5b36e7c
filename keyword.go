package schemac

import (
	"strconv"

	"github.com/iancoleman/strcase"
)

// Keyword names a schema-definition keyword.
type Keyword int

const (
	KeywordType Keyword = iota
	KeywordTitle
	KeywordRequired
	KeywordDescription
	KeywordItems
	KeywordProperties
	KeywordDefault
	KeywordExamples
	KeywordEnum
	KeywordConst
	KeywordMinLength
	KeywordMaxLength
	KeywordPattern
	KeywordFormat
	KeywordMinimum
	KeywordMaximum
	KeywordMinItems
	KeywordMaxItems
	KeywordUniqueItems
	KeywordContains
	// KeywordStruct marks a value that is itself a nested schema block. It
	// never populates a node; diagnostics use it to name a malformed block.
	KeywordStruct

	numKeywords
)

var keywordNames = [numKeywords]string{
	KeywordType:        "type",
	KeywordTitle:       "title",
	KeywordRequired:    "required",
	KeywordDescription: "description",
	KeywordItems:       "items",
	KeywordProperties:  "properties",
	KeywordDefault:     "default",
	KeywordExamples:    "examples",
	KeywordEnum:        "enum",
	KeywordConst:       "const",
	KeywordMinLength:   "minLength",
	KeywordMaxLength:   "maxLength",
	KeywordPattern:     "pattern",
	KeywordFormat:      "format",
	KeywordMinimum:     "minimum",
	KeywordMaximum:     "maximum",
	KeywordMinItems:    "minItems",
	KeywordMaxItems:    "maxItems",
	KeywordUniqueItems: "uniqueItems",
	KeywordContains:    "contains",
	KeywordStruct:      "struct",
}

// keywordAliases maps legacy field spellings (after camel-casing) to keywords.
var keywordAliases = map[string]Keyword{
	"ty":         KeywordType,
	"enumValues": KeywordEnum,
	"constValue": KeywordConst,
	"minLenght":  KeywordMinLength,
	"maxLenght":  KeywordMaxLength,
}

var keywordByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for i, n := range keywordNames {
		if Keyword(i) == KeywordStruct {
			continue
		}
		m[n] = Keyword(i)
	}
	return m
}()

// String returns the canonical external key of the keyword.
func (k Keyword) String() string {
	if k < 0 || k >= numKeywords {
		return "Keyword(" + strconv.Itoa(int(k)) + ")"
	}
	return keywordNames[k]
}

// LookupKeyword resolves a keyword as written by an author. camelCase,
// snake_case and PascalCase spellings are all accepted, as are the legacy
// aliases (ty, enum_values, const_value, min_lenght, max_lenght).
func LookupKeyword(name string) (Keyword, bool) {
	if k, ok := keywordByName[name]; ok {
		return k, true
	}
	camel := strcase.ToLowerCamel(name)
	if k, ok := keywordByName[camel]; ok {
		return k, true
	}
	k, ok := keywordAliases[camel]
	return k, ok
}

// Keywords lists every populating keyword (the struct marker excluded).
func Keywords() []Keyword {
	out := make([]Keyword, 0, numKeywords-1)
	for k := Keyword(0); k < KeywordStruct; k++ {
		out = append(out, k)
	}
	return out
}

// TakesBlock reports whether the keyword's value is a nested schema block.
func (k Keyword) TakesBlock() bool {
	return k == KeywordProperties || k == KeywordItems || k == KeywordContains
}

// IsGeneric reports whether the keyword is legal regardless of type.
func (k Keyword) IsGeneric() bool {
	switch k {
	case KeywordTitle, KeywordDescription, KeywordDefault, KeywordExamples, KeywordEnum, KeywordConst:
		return true
	}
	return false
}

// typeKeywords is the keyword × type legality table for type-specific keywords.
var typeKeywords = map[Type][]Keyword{
	TypeObject: {KeywordProperties, KeywordRequired},
	TypeString: {KeywordMinLength, KeywordMaxLength, KeywordPattern, KeywordFormat},
	TypeNumber: {KeywordMinimum, KeywordMaximum},
	TypeArray:  {KeywordItems, KeywordMinItems, KeywordMaxItems, KeywordUniqueItems, KeywordContains},
	TypeUnset:  nil,
}

var legal = func() [5][numKeywords]bool {
	var tbl [5][numKeywords]bool
	for t, kws := range typeKeywords {
		for _, k := range kws {
			tbl[t][k] = true
		}
	}
	return tbl
}()

// LegalFor reports whether the keyword may populate a node of type t. The
// type keyword itself is always legal; the struct marker never is.
func (k Keyword) LegalFor(t Type) bool {
	if k == KeywordType {
		return true
	}
	if k < 0 || k >= KeywordStruct || t < 0 || int(t) >= len(legal) {
		return false
	}
	return k.IsGeneric() || legal[t][k]
}

// KeywordsFor lists the type-specific keywords legal for t.
func KeywordsFor(t Type) []Keyword {
	return append([]Keyword(nil), typeKeywords[t]...)
}
