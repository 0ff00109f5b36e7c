// Package diag renders compile errors against the notation source, in the
// file:line:col style compilers use:
//
//	person.yaml:5:5: illegal_keyword: keyword pattern is not allowed for type number
//	5 |     pattern: "^[0-9]+$"
//	  |     ^^^^^^^  ~~~~~~~~~~
//	  = at /properties/age
//	  = hint: number allows minimum, maximum
package diag

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/reoring/schemac"
)

// Options controls rendering.
type Options struct {
	Filename string // shown in the header; "<input>" when empty
	Color    bool
	// NoHints drops the legal-keyword hint under illegal keyword errors.
	NoHints bool
}

type palette struct {
	header func(a ...any) string
	code   func(a ...any) string
	gutter func(a ...any) string
	caret  func(a ...any) string
	tilde  func(a ...any) string
	note   func(a ...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := fmt.Sprint
		return palette{plain, plain, plain, plain, plain, plain}
	}
	sprint := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		header: sprint(color.Bold),
		code:   sprint(color.FgRed, color.Bold),
		gutter: sprint(color.FgBlue),
		caret:  sprint(color.FgRed, color.Bold),
		tilde:  sprint(color.FgYellow),
		note:   sprint(color.FgCyan),
	}
}

// Renderer renders errors for one source buffer.
type Renderer struct {
	src []byte
	ix  *schemac.LineIndex
	opt Options
	pal palette
}

// New returns a Renderer over src. The last Options wins.
func New(src []byte, opts ...Options) *Renderer {
	var o Options
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	if o.Filename == "" {
		o.Filename = "<input>"
	}
	return &Renderer{src: src, ix: schemac.NewLineIndex(src), opt: o, pal: newPalette(o.Color)}
}

// Render writes err to w. Errors that are not compile errors get a one-line
// "file: message" form.
func Render(w io.Writer, src []byte, err error, opts ...Options) error {
	return New(src, opts...).Render(w, err)
}

// String renders err into a string.
func (r *Renderer) String(err error) string {
	var buf bytes.Buffer
	_ = r.Render(&buf, err)
	return buf.String()
}

// Render writes err to w.
func (r *Renderer) Render(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	iss, ok := schemac.ToIssue(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %s\n", r.pal.header(r.opt.Filename), err)
		return werr
	}
	ce, _ := schemac.AsCompileError(err)
	sp := ce.Spans()

	var b strings.Builder
	loc := r.opt.Filename
	if iss.Line > 0 {
		loc += ":" + strconv.Itoa(iss.Line) + ":" + strconv.Itoa(iss.Column)
	}
	fmt.Fprintf(&b, "%s: %s: %s\n", r.pal.header(loc), r.pal.code(iss.Code), iss.Message)

	anchor := sp.Keyword
	if anchor.IsZero() {
		anchor = sp.Value
	}
	width := len(strconv.Itoa(r.ix.Lines()))
	pad := strings.Repeat(" ", width)
	if !anchor.IsZero() && anchor.Start.Line > 0 {
		line := anchor.Start.Line
		num := strconv.Itoa(line)
		text := r.line(line)
		fmt.Fprintf(&b, "%s%s %s %s\n", pad[len(num):], r.pal.gutter(num), r.pal.gutter("|"), text)
		if marks := r.underline(line, text, sp); marks != "" {
			fmt.Fprintf(&b, "%s %s %s\n", pad, r.pal.gutter("|"), marks)
		}
	}
	for _, n := range r.notes(ce, iss) {
		fmt.Fprintf(&b, "%s %s %s\n", pad, r.pal.note("="), n)
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

func (r *Renderer) line(n int) string {
	start := r.ix.Offset(n, 1)
	if start < 0 {
		return ""
	}
	end := bytes.IndexByte(r.src[start:], '\n')
	if end < 0 {
		end = len(r.src) - start
	}
	return strings.TrimRight(string(r.src[start:start+end]), "\r")
}

// underline marks the keyword span with '^' and the value span with '~' on
// the given source line. Tabs are kept so the marks line up.
func (r *Renderer) underline(line int, text string, sp schemac.SpanPair) string {
	base := r.ix.Offset(line, 1)
	in := func(s schemac.Span, off int) bool {
		if s.IsZero() {
			return false
		}
		end := s.End.Offset
		if end <= s.Start.Offset {
			end = s.Start.Offset + 1
		}
		return off >= s.Start.Offset && off < end
	}
	var marks []byte
	for i, c := range text {
		off := base + i
		switch {
		case in(sp.Keyword, off):
			marks = append(marks, '^')
		case in(sp.Value, off):
			marks = append(marks, '~')
		case c == '\t':
			marks = append(marks, '\t')
		default:
			marks = append(marks, ' ')
		}
	}
	out := strings.TrimRight(string(marks), " \t")
	if out == "" {
		return ""
	}
	if !r.opt.Color {
		return out
	}
	var b strings.Builder
	for i := 0; i < len(out); {
		j := i
		for j < len(out) && out[j] == out[i] {
			j++
		}
		switch out[i] {
		case '^':
			b.WriteString(r.pal.caret(out[i:j]))
		case '~':
			b.WriteString(r.pal.tilde(out[i:j]))
		default:
			b.WriteString(out[i:j])
		}
		i = j
	}
	return b.String()
}

func (r *Renderer) notes(ce schemac.CompileError, iss schemac.Issue) []string {
	var out []string
	if iss.Path != "" {
		out = append(out, "at "+iss.Path)
	}
	switch e := ce.(type) {
	case *schemac.DuplicateKeywordError:
		out = append(out, "first set at "+r.opt.Filename+":"+e.First.Keyword.Start.String())
	case *schemac.DuplicatePropertyError:
		out = append(out, "first declared at "+r.opt.Filename+":"+e.First.Start.String())
	case *schemac.IllegalKeywordError:
		if r.opt.NoHints {
			break
		}
		if e.Type.IsUnset() {
			out = append(out, "hint: declare type before "+e.Keyword.String())
			break
		}
		names := make([]string, 0, 4)
		for _, k := range schemac.KeywordsFor(e.Type) {
			names = append(names, k.String())
		}
		out = append(out, "hint: "+e.Type.String()+" allows "+strings.Join(names, ", "))
	}
	return out
}
