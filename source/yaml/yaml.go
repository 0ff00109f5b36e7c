// Package yamlsrc reads the schema notation written as YAML.
//
// A block is a mapping from keyword to value. Plain identifier scalars are
// identifiers, quoted scalars are strings, a single-quoted one-character
// scalar is a char, and sequences are arrays:
//
//	type: object
//	title: Person
//	properties:
//	  name:
//	    type: string
//	    min_length: 1
//	  tags:
//	    type: array
//	    items: string
//	required: [name]
//
// Keyword spellings go through schemac.LookupKeyword, so snake_case works.
// A property whose value is a scalar is shorthand for a block holding only
// that type.
package yamlsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/reoring/schemac"
	"github.com/reoring/schemac/internal/logging"
)

// Options bundles front-end options.
type Options struct {
	// Compile is forwarded to schemac.Compile. RootSpan is filled in from the
	// document when left zero.
	Compile schemac.CompileOpt
	Logger  *slog.Logger
}

func pick(opts []Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	if o.Logger == nil {
		o.Logger = logging.Logger()
	}
	if o.Compile.Logger == nil {
		o.Compile.Logger = o.Logger
	}
	return o
}

// Parse converts the first YAML document in data into compiler entries.
// Syntax errors come back as plain errors; notation errors (unknown
// keywords, malformed values) as schemac compile errors.
func Parse(data []byte, opts ...Options) ([]schemac.Entry, error) {
	entries, _, err := parse(data, pick(opts))
	return entries, err
}

// Compile parses the first YAML document and compiles it.
func Compile(data []byte, opts ...Options) (*schemac.Schema, error) {
	opt := pick(opts)
	entries, span, err := parse(data, opt)
	if err != nil {
		return nil, err
	}
	copt := opt.Compile
	if copt.RootSpan.IsZero() {
		copt.RootSpan = span
	}
	return schemac.Compile(entries, copt)
}

func parse(data []byte, opt Options) ([]schemac.Entry, schemac.Span, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, schemac.Span{}, fmt.Errorf("yamlsrc: %w", err)
	}
	b := newBuilder(data)
	entries, span, err := b.document(&doc)
	if err != nil {
		return nil, schemac.Span{}, err
	}
	opt.Logger.Debug("parsed yaml schema", "entries", len(entries))
	return entries, span, nil
}

// ParseAll compiles every document of a multi-document stream. Spans are
// relative to the whole stream. An error names the zero-based document
// index and wraps the underlying error, so errors.As still finds compile
// errors.
func ParseAll(r io.Reader, opts ...Options) ([]*schemac.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("yamlsrc: read: %w", err)
	}
	opt := pick(opts)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	b := newBuilder(data)
	var out []*schemac.Schema
	for i := 0; ; i++ {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("yamlsrc: document %d: %w", i, err)
		}
		entries, span, err := b.document(&doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		copt := opt.Compile
		if copt.RootSpan.IsZero() {
			copt.RootSpan = span
		}
		s, err := schemac.Compile(entries, copt)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		opt.Logger.Debug("compiled yaml document", "index", i, "type", s.Type().String())
		out = append(out, s)
	}
}
