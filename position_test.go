package schemac_test

import (
	"testing"

	"github.com/reoring/schemac"
)

func TestLineIndex_RoundTrip(t *testing.T) {
	src := []byte("type: string\ntitle: Name\n\nminLength: 1")
	ix := schemac.NewLineIndex(src)
	if ix.Lines() != 4 {
		t.Fatalf("Lines = %d", ix.Lines())
	}
	cases := []struct {
		off, line, col int
	}{
		{0, 1, 1},
		{6, 1, 7},
		{12, 1, 13}, // the newline itself
		{13, 2, 1},
		{25, 3, 1},
		{26, 4, 1},
		{len(src), 4, 13},
	}
	for _, c := range cases {
		p := ix.Pos(c.off)
		if p.Line != c.line || p.Column != c.col || p.Offset != c.off {
			t.Fatalf("Pos(%d) = %+v, want %d:%d", c.off, p, c.line, c.col)
		}
		if back := ix.Offset(c.line, c.col); back != c.off {
			t.Fatalf("Offset(%d,%d) = %d, want %d", c.line, c.col, back, c.off)
		}
	}
	if p := ix.Pos(1000); p.Offset != len(src) {
		t.Fatalf("offset must clamp, got %+v", p)
	}
	if ix.Offset(9, 1) != -1 || ix.Offset(1, 0) != -1 {
		t.Fatalf("out-of-range line/column must report -1")
	}
}

func TestSpan_Basics(t *testing.T) {
	ix := schemac.NewLineIndex([]byte("ab\ncd"))
	sp := ix.Span(3, 5)
	if sp.String() != "2:1" || sp.End.Column != 3 {
		t.Fatalf("span = %+v", sp)
	}
	if !(schemac.Span{}).IsZero() || sp.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
	if (schemac.Pos{Offset: 4}).String() != "@4" {
		t.Fatalf("offset-only position renders %q", schemac.Pos{Offset: 4})
	}
}
