package errors

import (
	"strings"
	"unicode"

	"qlang/pkg/source"
)

// Templates return a prefilled Builder so callers can add context-specific
// hints or notes before building.

// UnexpectedToken reports that a grammar position required expected but
// found was there.
func UnexpectedToken(pos source.Position, span source.Span, expected, found string) *Builder {
	return New(CodeUnexpectedToken).
		At(pos).
		Span(span).
		Hint("expected %s, got %s", expected, found)
}

// UnexpectedEndOfInput reports that input ran out while expected was
// still required. The span is zero-width at the end of input.
func UnexpectedEndOfInput(pos source.Position, span source.Span, expected string) *Builder {
	return New(CodeUnexpectedEndOfInput).
		At(pos).
		Span(source.Span{Start: span.Start, End: span.Start}).
		Hint("expected %s before the end of input", expected)
}

// ImportMissingLibrary reports that `from` was not followed by a string.
func ImportMissingLibrary(pos source.Position, span source.Span, found string) *Builder {
	return New(CodeImportMissingLibrary).
		At(pos).
		Span(span).
		Message("expected a library path after `from`, got %s", found).
		Hint("did you forget to add a library?").
		Note(`library paths are string literals, e.g. import * from "std";`)
}

// ImportMalformedMemberList reports a bad separator or member inside an
// import member list.
func ImportMalformedMemberList(pos source.Position, span source.Span, found string) *Builder {
	return New(CodeImportMalformedMemberList).
		At(pos).
		Span(span).
		Message("malformed import member list, got %s", found).
		Hint("import members are identifiers separated by commas").
		Note(`e.g. import (print, read) from "std";`)
}

// CurlyBracketImport reports an import member list written with braces.
func CurlyBracketImport(pos source.Position, span source.Span) *Builder {
	return New(CodeImportMalformedMemberList).
		At(pos).
		Span(span).
		Message("import member lists are enclosed in parentheses").
		Hint("import statements use parentheses")
}

// InvalidNumber reports a malformed number literal.
func InvalidNumber(pos source.Position, span source.Span, literal string) *Builder {
	b := New(CodeInvalidNumberLiteral).
		At(pos).
		Span(span).
		Message("invalid number literal `%s`", literal)
	if strings.IndexFunc(literal, isAlpha) >= 0 {
		return b.Hint("number literals can't have alphabetical characters in them!")
	}
	return b.Hint("number literals must fit in 32 bits")
}

// ExpectedSemicolon reports a statement that did not end with `;`.
func ExpectedSemicolon(pos source.Position, span source.Span, found string) *Builder {
	return New(CodeExpectedSemicolon).
		At(pos).
		Span(span).
		Message("expected `;`, got %s", found).
		Hint("statements end with a semicolon")
}

// UnimplementedFeature reports a construct the grammar recognizes but does
// not support.
func UnimplementedFeature(pos source.Position, span source.Span, feature string) *Builder {
	return New(CodeUnimplementedFeature).
		At(pos).
		Span(span).
		Message("%s are not supported", feature).
		Hint("this feature is not yet implemented in qlang, it may be added or removed in a future version")
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
