package schemac

import (
	"fmt"
	"sort"
)

// Pos is a location in the notation source. Offset is a byte offset; Line and
// Column are 1-based and zero when the front-end does not know them.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// IsZero reports whether the position carries no information.
func (p Pos) IsZero() bool { return p.Offset == 0 && p.Line == 0 && p.Column == 0 }

func (p Pos) String() string {
	if p.Line == 0 {
		return fmt.Sprintf("@%d", p.Offset)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open [Start, End) range in the notation source.
type Span struct {
	Start Pos
	End   Pos
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool { return s.Start.IsZero() && s.End.IsZero() }

func (s Span) String() string { return s.Start.String() }

// SpanPair records where a keyword and its value appeared.
type SpanPair struct {
	Keyword Span
	Value   Span
}

// LineIndex converts byte offsets to line/column positions and back.
type LineIndex struct {
	size int
	nl   []int // offsets of '\n'
}

// NewLineIndex scans src once and records every newline offset.
func NewLineIndex(src []byte) *LineIndex {
	ix := &LineIndex{size: len(src)}
	for i, c := range src {
		if c == '\n' {
			ix.nl = append(ix.nl, i)
		}
	}
	return ix
}

// Pos returns the position of the byte at off. Offsets past the end clamp to
// the end of the source.
func (ix *LineIndex) Pos(off int) Pos {
	if off < 0 {
		off = 0
	}
	if off > ix.size {
		off = ix.size
	}
	li := sort.SearchInts(ix.nl, off)
	col := off + 1
	if li > 0 {
		col = off - ix.nl[li-1]
	}
	return Pos{Offset: off, Line: li + 1, Column: col}
}

// Offset returns the byte offset of a 1-based line/column pair, or -1 when the
// line does not exist.
func (ix *LineIndex) Offset(line, col int) int {
	if line < 1 || line > len(ix.nl)+1 || col < 1 {
		return -1
	}
	start := 0
	if line > 1 {
		start = ix.nl[line-2] + 1
	}
	off := start + col - 1
	if off > ix.size {
		off = ix.size
	}
	return off
}

// Span builds a span from two byte offsets.
func (ix *LineIndex) Span(start, end int) Span {
	return Span{Start: ix.Pos(start), End: ix.Pos(end)}
}

// Lines returns the number of lines in the source.
func (ix *LineIndex) Lines() int { return len(ix.nl) + 1 }
