package errors

import (
	"fmt"
	"slices"

	"qlang/pkg/source"
)

// Builder accumulates the parts of a Diagnostic. Position and span are set
// independently; Build finalizes a copy.
type Builder struct {
	d Diagnostic
}

// New starts a diagnostic for code.
func New(code Code) *Builder {
	return &Builder{d: Diagnostic{Code: code}}
}

// Message sets the message, formatted with fmt.Sprintf when args are given.
func (b *Builder) Message(format string, args ...any) *Builder {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	b.d.Msg = format
	return b
}

// Hint appends a hint line.
func (b *Builder) Hint(format string, args ...any) *Builder {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	b.d.Hints = append(b.d.Hints, format)
	return b
}

// Note appends a note line.
func (b *Builder) Note(format string, args ...any) *Builder {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	b.d.Notes = append(b.d.Notes, format)
	return b
}

// At sets the position.
func (b *Builder) At(pos source.Position) *Builder {
	b.d.Position = pos
	return b
}

// Span sets the byte span.
func (b *Builder) Span(span source.Span) *Builder {
	b.d.Span = span
	return b
}

// Build returns the finished diagnostic. The builder can keep being used;
// later calls do not affect diagnostics already built.
func (b *Builder) Build() Diagnostic {
	d := b.d
	if d.Msg == "" {
		d.Msg = d.Code.DefaultMessage()
	}
	d.Hints = slices.Clone(d.Hints)
	d.Notes = slices.Clone(d.Notes)
	return d
}
