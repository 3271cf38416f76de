package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end). An end before start collapses to start.
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the span is zero-width.
func (s Span) IsEmpty() bool { return s.End <= s.Start }

// Text returns the slice of src covered by the span, clamped to src.
func (s Span) Text(src string) string {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	if o.Start < s.Start {
		s.Start = o.Start
	}
	if o.End > s.End {
		s.End = o.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a 0-based line and column. Columns count characters, not bytes.
type Position struct {
	Line   int
	Column int
}

// String renders the position 1-based, as users see it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Tracker keeps a running line/column pair while a scanner consumes input.
type Tracker struct {
	offset int
	pos    Position
}

// TrackerAt returns a tracker resuming at pos, offset bytes into the input.
func TrackerAt(pos Position, offset int) Tracker {
	return Tracker{offset: offset, pos: pos}
}

// Advance records that the character r, encoded in size bytes, was consumed.
func (t *Tracker) Advance(r rune, size int) {
	t.offset += size
	if r == '\n' {
		t.pos.Line++
		t.pos.Column = 0
		return
	}
	t.pos.Column++
}

// Offset returns the byte offset of the next unconsumed character.
func (t *Tracker) Offset() int { return t.offset }

// Position returns the position of the next unconsumed character.
func (t *Tracker) Position() Position { return t.pos }

// LineIndex maps byte offsets to positions for a fixed text.
type LineIndex struct {
	text   string
	starts []int // byte offset where each line begins
}

// NewLineIndex builds an index over text.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Position converts offset into a position. Offsets outside the text are
// clamped to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.text) {
		offset = len(li.text)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	start := li.starts[line]
	return Position{Line: line, Column: utf8.RuneCountInString(li.text[start:offset])}
}

// LineCount returns the number of line starts in the text.
func (li *LineIndex) LineCount() int { return len(li.starts) }
