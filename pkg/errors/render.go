package errors

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"qlang/pkg/source"
)

// styles holds the color formatters used by the renderer.
type styles struct {
	severity *color.Color
	code     *color.Color
	gutter   *color.Color
	caret    *color.Color
	hint     *color.Color
	note     *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		severity: color.New(color.Bold, color.FgHiRed),
		code:     color.New(color.FgHiBlack),
		gutter:   color.New(color.Bold, color.FgHiBlue),
		caret:    color.New(color.Bold, color.FgHiRed),
		hint:     color.New(color.Bold, color.FgHiCyan),
		note:     color.New(color.Bold, color.FgHiGreen),
	}
	for _, c := range []*color.Color{s.severity, s.code, s.gutter, s.caret, s.hint, s.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Renderer turns diagnostics into the human-readable report format.
type Renderer struct {
	Color bool
}

// Render formats d against src without color.
func Render(src string, d Diagnostic) string {
	return Renderer{}.Render(src, d)
}

// Render formats d against src:
//
//	error: <message> [E<code>]
//	  <line> | <source line>
//	         | <spaces><carets>
//	hint: ...
//	note: ...
//
// Out-of-range positions are clamped. A position past the last line
// underlines the whole last line.
func (r Renderer) Render(src string, d Diagnostic) string {
	var b strings.Builder
	r.render(&b, src, source.SplitLines(src), d, "")
	return b.String()
}

func (r Renderer) render(b *strings.Builder, src string, lines []string, d Diagnostic, location string) {
	s := newStyles(r.Color)

	if len(lines) == 0 {
		lines = []string{""}
	}

	line, col := d.Position.Line, d.Position.Column
	span := caretWidth(src, d.Span)
	if line < 0 {
		line = 0
	}
	if line >= len(lines) {
		line = len(lines) - 1
		col = 0
		span = utf8.RuneCountInString(lines[line])
	}
	text := lines[line]
	lineLen := utf8.RuneCountInString(text)
	if col < 0 {
		col = 0
	}
	if col > lineLen {
		col = lineLen
	}
	// Tokens running past the end of the line are underlined up to it.
	if rest := lineLen - col; span > rest {
		span = rest
	}

	num := strconv.Itoa(line + 1)
	pad := strings.Repeat(" ", len(num))

	fmt.Fprintf(b, "%s: %s %s\n", s.severity.Sprint("error"), d.Msg, s.code.Sprintf("[%s]", d.Code))
	if location != "" {
		fmt.Fprintf(b, "%s%s %s\n", pad, s.gutter.Sprint("-->"), location)
	}
	fmt.Fprintf(b, "  %s %s\n", s.gutter.Sprint(num+" |"), text)
	fmt.Fprintf(b, "  %s %s%s\n", s.gutter.Sprint(pad+" |"), indent(text, col), s.caret.Sprint(strings.Repeat("^", columns(text, col, span))))
	for _, h := range d.Hints {
		fmt.Fprintf(b, "%s %s\n", s.hint.Sprint("hint:"), h)
	}
	for _, n := range d.Notes {
		fmt.Fprintf(b, "%s %s\n", s.note.Sprint("note:"), n)
	}
}

// caretWidth is the character count of the span, at least 1.
func caretWidth(src string, span source.Span) int {
	if span.Start >= 0 && span.End <= len(src) && span.Start <= span.End {
		if n := utf8.RuneCountInString(src[span.Start:span.End]); n > 0 {
			return n
		}
	}
	if n := span.Len(); n > 0 {
		return n
	}
	return 1
}

// columns returns the display width of the n characters of text starting at
// character col, at least 1.
func columns(text string, col, n int) int {
	cols, i := 0, 0
	for _, r := range text {
		if i >= col+n {
			break
		}
		if i >= col {
			cols += runeWidth(r)
		}
		i++
	}
	return max(cols, 1)
}

// runeWidth is 2 for wide and fullwidth East Asian characters, 1 otherwise.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// indent returns the whitespace that puts a caret under column col of text.
// Tabs are kept so the caret lines up with the echoed line.
func indent(text string, col int) string {
	var b strings.Builder
	i := 0
	for _, r := range text {
		if i == col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runeWidth(r)))
		}
		i++
	}
	return b.String()
}

// Display writes every diagnostic for sf to w in source order, each prefixed
// with a path:line:col location and separated by a blank line.
func (r Renderer) Display(w io.Writer, sf *source.SourceFile, diags []Diagnostic) error {
	sorted := slices.Clone(diags)
	Sort(sorted)

	var b strings.Builder
	for i, d := range sorted {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.render(&b, sf.Content, sf.Lines(), d, fmt.Sprintf("%s:%s", sf.DisplayPath(), d.Position))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DisplayErrors writes diags for sf to w without color.
func DisplayErrors(w io.Writer, sf *source.SourceFile, diags []Diagnostic) error {
	return Renderer{}.Display(w, sf, diags)
}
