package lexer

import (
	"fmt"

	"qlang/pkg/source"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string          // The raw lexeme, a slice of the input
	Span    source.Span     // Byte range of the whole lexeme
	Pos     source.Position // 0-based line/column where the token starts

	// Payloads. Only the field matching Type is meaningful.
	Value source.Span // STRING (quotes trimmed), IDENT, ATOM (colon trimmed)
	Int   int32       // INTEGER
	Float float32     // FLOAT
	Char  rune        // CHAR
	Bool  bool        // BOOLEAN
}

// --- Token Types ---
const (
	// Special
	ILLEGAL        TokenType = "ILLEGAL"        // Unknown character, unterminated or malformed literal
	INVALID_NUMBER TokenType = "INVALID_NUMBER" // Digits immediately followed by letters, or out of range
	EOF            TokenType = "EOF"            // End of input

	// Identifiers + Literals
	IDENT   TokenType = "IDENT"   // main, print_line
	ATOM    TokenType = "ATOM"    // :ok
	INTEGER TokenType = "INTEGER" // 42
	FLOAT   TokenType = "FLOAT"   // 4.2
	CHAR    TokenType = "CHAR"    // 'c'
	STRING  TokenType = "STRING"  // "std"

	// Operators
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	CARET    TokenType = "^"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LE       TokenType = "<="
	GE       TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	ARROW    TokenType = "->"

	// Delimiters
	ASSIGN    TokenType = "="
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	IMPORT    TokenType = "IMPORT"
	FROM      TokenType = "FROM"
	CONST     TokenType = "CONST"
	FN        TokenType = "FN"
	NULL      TokenType = "NULL"
	UNDEFINED TokenType = "UNDEFINED"
	BOOLEAN   TokenType = "BOOLEAN" // true, false
)

var keywords = map[string]TokenType{
	"import":    IMPORT,
	"from":      FROM,
	"const":     CONST,
	"fn":        FN,
	"null":      NULL,
	"undefined": UNDEFINED,
	"true":      BOOLEAN,
	"false":     BOOLEAN,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsValue reports whether a token of this type can stand alone as a value.
func (t TokenType) IsValue() bool {
	switch t {
	case INTEGER, FLOAT, CHAR, STRING, IDENT, ATOM, BOOLEAN, NULL, UNDEFINED:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the type is a binary operator.
func (t TokenType) IsOperator() bool {
	switch t {
	case PLUS, MINUS, ASTERISK, SLASH, PERCENT, CARET, LT, GT, LE, GE, EQ, NOT_EQ:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the type is a reserved word.
func (t TokenType) IsKeyword() bool {
	switch t {
	case IMPORT, FROM, CONST, FN, NULL, UNDEFINED, BOOLEAN:
		return true
	default:
		return false
	}
}

// Text returns the payload text (string contents, identifier or atom name).
func (t Token) Text(input string) string {
	return t.Value.Text(input)
}

// Describe names the token for use in messages, e.g. "identifier `foo`".
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT:
		return fmt.Sprintf("identifier `%s`", t.Literal)
	case ATOM:
		return fmt.Sprintf("atom `%s`", t.Literal)
	case INTEGER, FLOAT, INVALID_NUMBER:
		return fmt.Sprintf("number `%s`", t.Literal)
	case STRING:
		return fmt.Sprintf("string %s", t.Literal)
	case CHAR:
		return fmt.Sprintf("character %s", t.Literal)
	case ILLEGAL:
		return fmt.Sprintf("unrecognized input `%s`", t.Literal)
	}
	if t.Type.IsKeyword() {
		return fmt.Sprintf("keyword `%s`", t.Literal)
	}
	return fmt.Sprintf("`%s`", t.Literal)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Type, t.Literal)
}

// Payload returns the payload text cut from the lexeme itself, so it does
// not need the original input.
func (t Token) Payload() string {
	lo, hi := t.Value.Start-t.Span.Start, t.Value.End-t.Span.Start
	if lo < 0 || hi > len(t.Literal) || lo >= hi {
		return ""
	}
	return t.Literal[lo:hi]
}
