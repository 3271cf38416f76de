package errors

import (
	"fmt"
	"slices"

	"qlang/pkg/source"
)

// Diagnostic describes a single parse failure. It is a plain value: once
// returned it holds no reference to the tokens or parser that produced it.
type Diagnostic struct {
	Code     Code
	Msg      string
	Position source.Position // 0-based
	Span     source.Span
	Hints    []string
	Notes    []string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s [%s]", d.Position, d.Msg, d.Code)
}

// Pos returns where the diagnostic points.
func (d Diagnostic) Pos() source.Position { return d.Position }

// Kind returns the symbolic name of the diagnostic's code.
func (d Diagnostic) Kind() string { return d.Code.Name() }

// Message returns the message without position or code.
func (d Diagnostic) Message() string { return d.Msg }

// WithNote returns a copy of d with note appended. d itself is unchanged.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Hints = slices.Clone(d.Hints)
	d.Notes = append(slices.Clone(d.Notes), note)
	return d
}

// Sort orders diags by position. Diagnostics at the same position keep their
// relative order.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		switch {
		case a.Position.Before(b.Position):
			return -1
		case b.Position.Before(a.Position):
			return 1
		}
		return 0
	})
}

// HasCode reports whether any diagnostic in diags carries code.
func HasCode(diags []Diagnostic, code Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

// CountByCode tallies diagnostics per code.
func CountByCode(diags []Diagnostic) map[Code]int {
	counts := make(map[Code]int, len(diags))
	for _, d := range diags {
		counts[d.Code]++
	}
	return counts
}
