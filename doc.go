// Package schemac compiles a compact schema notation into JSON Schema
// documents.
//
// It provides:
//
// - A schema tree (Schema) whose keyword setters enforce per-type legality at
// compile time, so `minimum` on a string block is rejected where it is written
// - A literal Value model for default, examples, enum and const
// - Typed compile errors carrying the keyword span and value span, plus the
// JSON Pointer of the failing block
// - Serialization to JSON Schema with absent keywords omitted
//
// Design policy:
// - Keep the document model and compiler in the root package.
// - Front-ends live under source/ (yaml, json) and only use the public
// construction API (Entry, Compile, Schema setters).
// - Diagnostics rendering lives in diag/, the CLI in cmd/schemac.
//
// Typical usage:
//
//	entries, err := yamlsrc.Parse(data)
//	s, err := schemac.Compile(entries)
//	out, err := schemac.Serialize(s, schemac.SerializeOpt{Indent: "  "})
package schemac
