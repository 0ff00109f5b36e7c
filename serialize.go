package schemac

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/schemac/jsonschema"
)

// SerializeOpt configures Serialize and Document.
type SerializeOpt struct {
	Indent    string   // when non-empty, output is indented with this string
	SchemaURI string   // written as $schema on the root only
	Symbols   *Symbols // resolves ident values in default, enum and const
}

// Document converts a compiled tree into its JSON Schema form. Absent
// keywords are left nil, the type is always present ("null" while unset) and
// nested blocks are converted recursively.
func Document(s *Schema, opts ...SerializeOpt) *jsonschema.Schema {
	var opt SerializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	doc := document(s, opt.Symbols)
	doc.SchemaURI = opt.SchemaURI
	return doc
}

// Serialize renders a compiled tree as JSON. The only errors come from the
// encoder itself.
func Serialize(s *Schema, opts ...SerializeOpt) ([]byte, error) {
	var opt SerializeOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	doc := Document(s, opt)
	if opt.Indent != "" {
		return json.MarshalIndent(doc, "", opt.Indent)
	}
	return json.Marshal(doc)
}

// MarshalJSON serializes the tree with default options, so a *Schema can be
// embedded in larger documents.
func (s *Schema) MarshalJSON() ([]byte, error) { return json.Marshal(document(s, nil)) }

func document(s *Schema, syms *Symbols) *jsonschema.Schema {
	doc := &jsonschema.Schema{Type: s.typ.String()}
	for _, kw := range s.order {
		switch kw {
		case KeywordTitle:
			doc.Title = ptr(s.title)
		case KeywordDescription:
			doc.Description = ptr(s.description)
		case KeywordDefault:
			doc.Default = s.def.wire(syms)
		case KeywordExamples:
			doc.Examples = ptr(append([]string{}, s.examples...))
		case KeywordEnum:
			vals := make([]any, len(s.enum))
			for i, v := range s.enum {
				vals[i] = v.wire(syms)
			}
			doc.Enum = &vals
		case KeywordConst:
			doc.Const = s.constValue.wire(syms)
		case KeywordProperties:
			props := make(map[string]*jsonschema.Schema, len(s.properties))
			for name, child := range s.properties {
				props[name] = document(child, syms)
			}
			doc.Properties = &props
		case KeywordRequired:
			doc.Required = ptr(append([]string{}, s.required...))
		case KeywordMinLength:
			doc.MinLength = ptr(s.minLength)
		case KeywordMaxLength:
			doc.MaxLength = ptr(s.maxLength)
		case KeywordPattern:
			doc.Pattern = ptr(s.pattern)
		case KeywordFormat:
			doc.Format = ptr(s.format.String())
		case KeywordMinimum:
			doc.Minimum = ptr(s.minimum)
		case KeywordMaximum:
			doc.Maximum = ptr(s.maximum)
		case KeywordItems:
			doc.Items = document(s.items, syms)
		case KeywordMinItems:
			doc.MinItems = ptr(s.minItems)
		case KeywordMaxItems:
			doc.MaxItems = ptr(s.maxItems)
		case KeywordUniqueItems:
			doc.UniqueItems = ptr(s.uniqueItems)
		case KeywordContains:
			doc.Contains = document(s.contains, syms)
		}
	}
	return doc
}

func ptr[T any](v T) *T { return &v }
