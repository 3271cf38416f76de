package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlang/pkg/source"
)

func TestCodes(t *testing.T) {
	tests := []struct {
		code Code
		str  string
		name string
	}{
		{CodeUnknown, "E1000", "Unknown"},
		{CodeUnexpectedToken, "E1001", "UnexpectedToken"},
		{CodeUnexpectedEndOfInput, "E1002", "UnexpectedEndOfInput"},
		{CodeImportMissingLibrary, "E1003", "ImportMissingLibrary"},
		{CodeImportMalformedMemberList, "E1004", "ImportMalformedMemberList"},
		{CodeInvalidNumberLiteral, "E1005", "InvalidNumberLiteral"},
		{CodeExpectedSemicolon, "E1006", "ExpectedSemicolon"},
		{CodeUnimplementedFeature, "E1007", "UnimplementedFeature"},
	}
	require.Len(t, Codes(), len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.code, Codes()[i])
		assert.Equal(t, tt.str, tt.code.String())
		assert.Equal(t, tt.name, tt.code.Name())
		assert.NotEmpty(t, tt.code.DefaultMessage())
	}
	assert.Equal(t, "Unknown", Code(4242).Name())
}

func TestBuilder(t *testing.T) {
	b := New(CodeExpectedSemicolon).
		At(source.Position{Line: 2, Column: 4}).
		Span(source.Span{Start: 30, End: 31}).
		Hint("first").
		Note("count %d", 3)

	d := b.Build()
	assert.Equal(t, CodeExpectedSemicolon, d.Code)
	assert.Equal(t, "expected `;`", d.Msg)
	assert.Equal(t, source.Position{Line: 2, Column: 4}, d.Pos())
	assert.Equal(t, source.Span{Start: 30, End: 31}, d.Span)
	assert.Equal(t, []string{"first"}, d.Hints)
	assert.Equal(t, []string{"count 3"}, d.Notes)
	assert.Equal(t, "ExpectedSemicolon", d.Kind())
	assert.Equal(t, "3:5: expected `;` [E1006]", d.Error())

	// Built diagnostics are not affected by later builder calls.
	b.Hint("second").Message("changed")
	assert.Equal(t, []string{"first"}, d.Hints)
	assert.Equal(t, "expected `;`", d.Message())
	assert.Equal(t, "changed", b.Build().Msg)
}

func TestWithNoteCopies(t *testing.T) {
	d := New(CodeUnknown).Note("a").Build()
	e := d.WithNote("b")
	assert.Equal(t, []string{"a"}, d.Notes)
	assert.Equal(t, []string{"a", "b"}, e.Notes)
}

func TestDiagnosticIsError(t *testing.T) {
	var err error = InvalidNumber(source.Position{}, source.Span{End: 2}, "5a").Build()
	var d Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, CodeInvalidNumberLiteral, d.Code)
}

func TestTemplates(t *testing.T) {
	pos := source.Position{Line: 0, Column: 3}
	span := source.Span{Start: 3, End: 5}

	tests := []struct {
		name string
		d    Diagnostic
		code Code
		hint string
	}{
		{"unexpected token", UnexpectedToken(pos, span, "`from`", "`;`").Build(), CodeUnexpectedToken, "expected `from`, got `;`"},
		{"end of input", UnexpectedEndOfInput(pos, span, "`;`").Build(), CodeUnexpectedEndOfInput, "expected `;` before the end of input"},
		{"missing library", ImportMissingLibrary(pos, span, "`;`").Build(), CodeImportMissingLibrary, "did you forget to add a library?"},
		{"malformed members", ImportMalformedMemberList(pos, span, "`;`").Build(), CodeImportMalformedMemberList, "import members are identifiers separated by commas"},
		{"curly import", CurlyBracketImport(pos, span).Build(), CodeImportMalformedMemberList, "import statements use parentheses"},
		{"alpha number", InvalidNumber(pos, span, "5a").Build(), CodeInvalidNumberLiteral, "number literals can't have alphabetical characters in them!"},
		{"huge number", InvalidNumber(pos, span, "99999999999").Build(), CodeInvalidNumberLiteral, "number literals must fit in 32 bits"},
		{"semicolon", ExpectedSemicolon(pos, span, "`const`").Build(), CodeExpectedSemicolon, "statements end with a semicolon"},
		{"unimplemented", UnimplementedFeature(pos, span, "array literals").Build(), CodeUnimplementedFeature, "this feature is not yet implemented in qlang, it may be added or removed in a future version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.d.Code)
			assert.Equal(t, pos, tt.d.Position)
			assert.NotEmpty(t, tt.d.Msg)
			require.NotEmpty(t, tt.d.Hints)
			assert.Equal(t, tt.hint, tt.d.Hints[0])
		})
	}

	eoi := UnexpectedEndOfInput(pos, span, "`;`").Build()
	assert.True(t, eoi.Span.IsEmpty())
}

func TestRenderInvalidNumber(t *testing.T) {
	src := "const x = 5a;"
	d := InvalidNumber(source.Position{Line: 0, Column: 10}, source.Span{Start: 10, End: 12}, "5a").Build()

	want := "error: invalid number literal `5a` [E1005]\n" +
		"  1 | const x = 5a;\n" +
		"    |           ^^\n" +
		"hint: number literals can't have alphabetical characters in them!\n"
	assert.Equal(t, want, Render(src, d))
}

func TestRenderIsIdempotent(t *testing.T) {
	src := "import * from \"std\";\nconst y = ;\n"
	d := UnexpectedToken(source.Position{Line: 1, Column: 10}, source.Span{Start: 31, End: 32}, "a value", "`;`").
		Note("in const declaration").
		Build()
	first := Render(src, d)
	second := Render(src, d)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "  2 | const y = ;\n")
	assert.Contains(t, first, "note: in const declaration\n")
}

func TestRenderPastLastLine(t *testing.T) {
	src := "import * from\n"
	d := UnexpectedEndOfInput(source.Position{Line: 1, Column: 0}, source.Span{Start: 14, End: 14}, "a library path").Build()

	out := Render(src, d)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "  1 | import * from", lines[1])
	assert.Equal(t, "    | "+strings.Repeat("^", len("import * from")), lines[2])
}

func TestRenderClampsWithoutPanicking(t *testing.T) {
	tests := []struct {
		name string
		src  string
		d    Diagnostic
		want string
	}{
		{
			name: "empty source",
			src:  "",
			d:    New(CodeUnexpectedEndOfInput).Build(),
			want: "    | ^",
		},
		{
			name: "negative position",
			src:  "abc",
			d:    New(CodeUnknown).At(source.Position{Line: -3, Column: -7}).Span(source.Span{Start: -1, End: 1}).Build(),
			want: "    | ^^",
		},
		{
			name: "column past line end",
			src:  "ab",
			d:    New(CodeUnknown).At(source.Position{Line: 0, Column: 40}).Span(source.Span{Start: 2, End: 2}).Build(),
			want: "    |   ^",
		},
		{
			name: "span crossing the line end",
			src:  "x = \"abc\ndef",
			d:    New(CodeUnexpectedToken).At(source.Position{Line: 0, Column: 4}).Span(source.Span{Start: 4, End: 12}).Build(),
			want: "    |     ^^^^",
		},
		{
			name: "huge span",
			src:  "ab",
			d:    New(CodeUnknown).Span(source.Span{Start: 0, End: 1 << 20}).Build(),
			want: "    | ^^",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out string
			require.NotPanics(t, func() { out = Render(tt.src, tt.d) })
			lines := strings.Split(out, "\n")
			require.GreaterOrEqual(t, len(lines), 3)
			assert.Equal(t, tt.want, lines[2])
		})
	}
}

func TestRenderKeepsTabsInUnderline(t *testing.T) {
	src := "\tconst x = 1a;"
	d := InvalidNumber(source.Position{Line: 0, Column: 11}, source.Span{Start: 11, End: 13}, "1a").Build()
	lines := strings.Split(Render(src, d), "\n")
	assert.Equal(t, "    | \t          ^^", lines[2])
}

func TestRenderWideLineNumbers(t *testing.T) {
	src := strings.Repeat("\n", 11) + "const ;"
	d := UnexpectedToken(source.Position{Line: 11, Column: 6}, source.Span{Start: 17, End: 18}, "an identifier", "`;`").Build()
	lines := strings.Split(Render(src, d), "\n")
	assert.Equal(t, "  12 | const ;", lines[1])
	assert.Equal(t, "     |       ^", lines[2])
}

func TestRendererColor(t *testing.T) {
	d := InvalidNumber(source.Position{Line: 0, Column: 10}, source.Span{Start: 10, End: 12}, "5a").Build()
	colored := Renderer{Color: true}.Render("const x = 5a;", d)
	plain := Renderer{Color: false}.Render("const x = 5a;", d)
	assert.Contains(t, colored, "\x1b[")
	assert.NotContains(t, plain, "\x1b[")
}

func TestDisplayErrors(t *testing.T) {
	sf := source.FromFile("lib/main.q", "const x = 5a;\nconst y = 7b;\n")
	diags := []Diagnostic{
		InvalidNumber(source.Position{Line: 0, Column: 10}, source.Span{Start: 10, End: 12}, "5a").Build(),
		InvalidNumber(source.Position{Line: 1, Column: 10}, source.Span{Start: 24, End: 26}, "7b").Build(),
	}
	var buf bytes.Buffer
	require.NoError(t, DisplayErrors(&buf, sf, diags))

	out := buf.String()
	assert.Contains(t, out, " --> lib/main.q:1:11\n")
	assert.Contains(t, out, " --> lib/main.q:2:11\n")
	assert.Equal(t, 2, strings.Count(out, "error: "))
	assert.Contains(t, out, "^^\nhint: number literals can't have alphabetical characters in them!\n\nerror:")
}

func TestDisplayErrorsInSourceOrder(t *testing.T) {
	sf := source.FromFile("main.q", "const x = 5a;\nconst y = 7b;\n")
	first := InvalidNumber(source.Position{Line: 0, Column: 10}, source.Span{Start: 10, End: 12}, "5a").Build()
	second := InvalidNumber(source.Position{Line: 1, Column: 10}, source.Span{Start: 24, End: 26}, "7b").Build()
	diags := []Diagnostic{second, first}

	var buf bytes.Buffer
	require.NoError(t, DisplayErrors(&buf, sf, diags))
	out := buf.String()
	assert.Less(t, strings.Index(out, "main.q:1:11"), strings.Index(out, "main.q:2:11"))
	assert.Equal(t, second, diags[0], "caller's slice is left as is")
}

func TestSort(t *testing.T) {
	a := New(CodeUnexpectedToken).At(source.Position{Line: 0, Column: 4}).Build()
	b := New(CodeExpectedSemicolon).At(source.Position{Line: 1, Column: 0}).Build()
	c := New(CodeInvalidNumberLiteral).At(source.Position{Line: 1, Column: 0}).Build()
	diags := []Diagnostic{b, c, a}
	Sort(diags)
	assert.Equal(t, []Code{CodeUnexpectedToken, CodeExpectedSemicolon, CodeInvalidNumberLiteral}, []Code{diags[0].Code, diags[1].Code, diags[2].Code})
}

func TestRenderWideCharacters(t *testing.T) {
	src := "const s = \"日本\" 語;"
	d := UnexpectedToken(source.Position{Line: 0, Column: 15}, source.Span{Start: 19, End: 22}, "`;`", "`語`").Build()
	lines := strings.Split(Render(src, d), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "    | "+strings.Repeat(" ", 17)+"^^", lines[2])
}

func TestCountByCode(t *testing.T) {
	diags := []Diagnostic{
		New(CodeExpectedSemicolon).Build(),
		New(CodeExpectedSemicolon).Build(),
		New(CodeUnexpectedToken).Build(),
	}
	assert.Equal(t, map[Code]int{CodeExpectedSemicolon: 2, CodeUnexpectedToken: 1}, CountByCode(diags))
	assert.True(t, HasCode(diags, CodeUnexpectedToken))
	assert.False(t, HasCode(diags, CodeImportMissingLibrary))
}
