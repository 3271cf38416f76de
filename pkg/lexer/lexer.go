package lexer

import (
	"strconv"
	"unicode/utf8"

	"qlang/pkg/source"
)

// Lexer holds the state of the scanner.
type Lexer struct {
	input   string
	tracker source.Tracker // offset and position of ch
	ch      rune           // current char under examination
	size    int            // byte width of ch, 0 at end of input
}

// NewLexer creates a new Lexer.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.decode()
	return l
}

// Tokenize scans the whole input. The result always ends with exactly one
// EOF token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	tokens := make([]Token, 0, len(input)/3+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Input returns the text being scanned.
func (l *Lexer) Input() string {
	return l.input
}

// decode loads the character at the tracker's offset into ch.
func (l *Lexer) decode() {
	off := l.tracker.Offset()
	if off >= len(l.input) {
		l.ch, l.size = 0, 0
		return
	}
	l.ch, l.size = utf8.DecodeRuneInString(l.input[off:])
}

// readChar consumes the current character.
func (l *Lexer) readChar() {
	if l.size == 0 {
		return
	}
	l.tracker.Advance(l.ch, l.size)
	l.decode()
}

// peekChar looks at the character after ch without consuming anything.
func (l *Lexer) peekChar() rune {
	off := l.tracker.Offset() + l.size
	if l.size == 0 || off >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[off:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.size == 0
}

// skipWhitespace consumes whitespace and line comments.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipComment()
		default:
			return
		}
	}
}

// skipComment reads until the end of the line.
func (l *Lexer) skipComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.tracker.Offset()
	pos := l.tracker.Position()

	if l.atEOF() {
		return Token{
			Type: EOF,
			Span: source.Span{Start: len(l.input), End: len(l.input)},
			Pos:  pos,
		}
	}

	switch {
	case l.ch == '"':
		return l.readString(start, pos)
	case l.ch == '\'':
		return l.readCharLiteral(start, pos)
	case isLetter(l.ch):
		return l.readIdentifier(start, pos)
	case isDigit(l.ch):
		return l.readNumber(start, pos)
	case l.ch == ':' && isLetter(l.peekChar()):
		return l.readAtom(start, pos)
	}

	var typ TokenType
	switch l.ch {
	case '=':
		typ = l.twoChar('=', EQ, ASSIGN)
	case '!':
		typ = l.twoChar('=', NOT_EQ, ILLEGAL)
	case '<':
		typ = l.twoChar('=', LE, LT)
	case '>':
		typ = l.twoChar('=', GE, GT)
	case '-':
		typ = l.twoChar('>', ARROW, MINUS)
	default:
		typ = singleChar(l.ch)
		l.readChar()
	}
	return l.newToken(typ, start, pos)
}

// twoChar consumes ch and, if the following char is next, that one too.
func (l *Lexer) twoChar(next rune, double, single TokenType) TokenType {
	if l.peekChar() == next {
		l.readChar()
		l.readChar()
		return double
	}
	l.readChar()
	return single
}

func singleChar(ch rune) TokenType {
	switch ch {
	case '+':
		return PLUS
	case '*':
		return ASTERISK
	case '/':
		return SLASH
	case '%':
		return PERCENT
	case '^':
		return CARET
	case ';':
		return SEMICOLON
	case ':':
		return COLON
	case ',':
		return COMMA
	case '(':
		return LPAREN
	case ')':
		return RPAREN
	case '{':
		return LBRACE
	case '}':
		return RBRACE
	case '[':
		return LBRACKET
	case ']':
		return RBRACKET
	default:
		return ILLEGAL
	}
}

// newToken builds a token covering input[start:current offset].
func (l *Lexer) newToken(typ TokenType, start int, pos source.Position) Token {
	end := l.tracker.Offset()
	return Token{
		Type:    typ,
		Literal: l.input[start:end],
		Span:    source.Span{Start: start, End: end},
		Pos:     pos,
	}
}

// readIdentifier reads [A-Za-z_][A-Za-z0-9_]* and classifies keywords.
func (l *Lexer) readIdentifier(start int, pos source.Position) Token {
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	tok := l.newToken(IDENT, start, pos)
	tok.Type = LookupIdent(tok.Literal)
	switch tok.Type {
	case IDENT:
		tok.Value = tok.Span
	case BOOLEAN:
		tok.Bool = tok.Literal == "true"
	}
	return tok
}

// readNumber reads an integer or float literal. A letter or underscore
// directly after the digits turns the whole alphanumeric run into an
// INVALID_NUMBER token rather than splitting it.
func (l *Lexer) readNumber(start int, pos source.Position) Token {
	typ := INTEGER
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if isLetter(l.ch) {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		return l.newToken(INVALID_NUMBER, start, pos)
	}

	tok := l.newToken(typ, start, pos)
	if typ == FLOAT {
		f, err := strconv.ParseFloat(tok.Literal, 32)
		if err != nil {
			tok.Type = INVALID_NUMBER
			return tok
		}
		tok.Float = float32(f)
		return tok
	}
	i, err := strconv.ParseInt(tok.Literal, 10, 32)
	if err != nil {
		tok.Type = INVALID_NUMBER
		return tok
	}
	tok.Int = int32(i)
	return tok
}

// readAtom reads ':' followed by [A-Za-z_]+.
func (l *Lexer) readAtom(start int, pos source.Position) Token {
	l.readChar() // ':'
	for isLetter(l.ch) {
		l.readChar()
	}
	tok := l.newToken(ATOM, start, pos)
	tok.Value = source.Span{Start: start + 1, End: tok.Span.End}
	return tok
}

// readString reads a double-quoted string. Backslash escapes are kept
// verbatim but an escaped quote does not close the string. An unterminated
// string becomes an ILLEGAL token running to the end of input.
func (l *Lexer) readString(start int, pos source.Position) Token {
	l.readChar() // opening quote
	for !l.atEOF() && l.ch != '"' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.atEOF() {
		return l.newToken(ILLEGAL, start, pos)
	}
	l.readChar() // closing quote
	tok := l.newToken(STRING, start, pos)
	tok.Value = source.Span{Start: start + 1, End: tok.Span.End - 1}
	return tok
}

// readCharLiteral reads a single-quoted character. Anything other than
// exactly one character between the quotes is ILLEGAL. An unterminated
// literal stops at the end of its line.
func (l *Lexer) readCharLiteral(start int, pos source.Position) Token {
	l.readChar() // opening quote
	contentStart := l.tracker.Offset()
	for !l.atEOF() && l.ch != '\'' && l.ch != '\n' {
		l.readChar()
	}
	if l.ch != '\'' {
		return l.newToken(ILLEGAL, start, pos)
	}
	content := l.input[contentStart:l.tracker.Offset()]
	l.readChar() // closing quote

	if utf8.RuneCountInString(content) != 1 {
		return l.newToken(ILLEGAL, start, pos)
	}
	tok := l.newToken(CHAR, start, pos)
	tok.Char, _ = utf8.DecodeRuneInString(content)
	return tok
}

// isLetter checks if the character is an ASCII letter or underscore.
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if the character is a decimal digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
