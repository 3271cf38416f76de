package lexer

import (
	"unicode/utf8"

	"qlang/pkg/source"
)

// Stream is a read-only cursor over a token slice terminated by EOF.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream wraps tokens. If the slice does not end with an EOF token one
// is appended, positioned after the last token.
func NewStream(tokens []Token) *Stream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		eof := Token{Type: EOF}
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			eof.Span = source.Span{Start: last.Span.End, End: last.Span.End}
			t := source.TrackerAt(last.Pos, last.Span.Start)
			for _, r := range last.Literal {
				t.Advance(r, utf8.RuneLen(r))
			}
			eof.Pos = t.Position()
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &Stream{tokens: tokens}
}

// Current returns the token under the cursor.
func (s *Stream) Current() Token {
	return s.tokens[s.pos]
}

// Peek returns the token n positions ahead of the cursor. Looking past the
// end yields the EOF token.
func (s *Stream) Peek(n int) Token {
	i := s.pos + n
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	if i < 0 {
		return s.tokens[0]
	}
	return s.tokens[i]
}

// Advance moves the cursor forward by one token and returns the token that
// was current. The cursor never moves past EOF.
func (s *Stream) Advance() Token {
	tok := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

// AtEnd reports whether the cursor rests on EOF.
func (s *Stream) AtEnd() bool {
	return s.tokens[s.pos].Type == EOF
}

// At returns the i-th token. Indexes past the end yield the EOF token.
func (s *Stream) At(i int) Token {
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Index returns the cursor position.
func (s *Stream) Index() int {
	return s.pos
}

// Len returns the number of tokens including EOF.
func (s *Stream) Len() int {
	return len(s.tokens)
}
