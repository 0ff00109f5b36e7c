package jsonschema

// Draft202012 is the meta-schema URI callers usually pass as $schema.
const Draft202012 = "https://json-schema.org/draft/2020-12/schema"

// Schema is the serialized form of a compiled block. A nil field was not
// written by the author and is omitted; pointers keep explicit zero values
// (minLength: 0, uniqueItems: false, examples: []) in the output.
type Schema struct {
	// Root only
	SchemaURI string `json:"$schema,omitempty"`

	// Core
	Type        string    `json:"type"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Examples    *[]string `json:"examples,omitempty"`
	Enum        *[]any    `json:"enum,omitempty"`
	Const       any       `json:"const,omitempty"`

	// Object
	Properties *map[string]*Schema `json:"properties,omitempty"`
	Required   *[]string           `json:"required,omitempty"`

	// String
	MinLength *uint64 `json:"minLength,omitempty"`
	MaxLength *uint64 `json:"maxLength,omitempty"`
	Pattern   *string `json:"pattern,omitempty"`
	Format    *string `json:"format,omitempty"`

	// Number
	Minimum *uint64 `json:"minimum,omitempty"`
	Maximum *uint64 `json:"maximum,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	MinItems    *uint64 `json:"minItems,omitempty"`
	MaxItems    *uint64 `json:"maxItems,omitempty"`
	UniqueItems *bool   `json:"uniqueItems,omitempty"`
	Contains    *Schema `json:"contains,omitempty"`
}

// Keys lists the JSON keys s will emit, in output order. It is mainly useful
// for tests and for tools that report on generated documents.
func (s *Schema) Keys() []string {
	var keys []string
	add := func(present bool, k string) {
		if present {
			keys = append(keys, k)
		}
	}
	add(s.SchemaURI != "", "$schema")
	add(true, "type")
	add(s.Title != nil, "title")
	add(s.Description != nil, "description")
	add(s.Default != nil, "default")
	add(s.Examples != nil, "examples")
	add(s.Enum != nil, "enum")
	add(s.Const != nil, "const")
	add(s.Properties != nil, "properties")
	add(s.Required != nil, "required")
	add(s.MinLength != nil, "minLength")
	add(s.MaxLength != nil, "maxLength")
	add(s.Pattern != nil, "pattern")
	add(s.Format != nil, "format")
	add(s.Minimum != nil, "minimum")
	add(s.Maximum != nil, "maximum")
	add(s.Items != nil, "items")
	add(s.MinItems != nil, "minItems")
	add(s.MaxItems != nil, "maxItems")
	add(s.UniqueItems != nil, "uniqueItems")
	add(s.Contains != nil, "contains")
	return keys
}
