package parser

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/stacks/arraystack"

	"qlang/pkg/errors"
	"qlang/pkg/lexer"
)

// Dialect selects the accepted grammar.
type Dialect int

const (
	// Extended accepts functions, blocks, calls and single-operator binary
	// expressions on top of the minimal grammar.
	Extended Dialect = iota
	// Minimal accepts imports and consts with single literal or identifier
	// values only.
	Minimal
)

func (d Dialect) String() string {
	switch d {
	case Extended:
		return "extended"
	case Minimal:
		return "minimal"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// ParseDialect parses "minimal" or "extended".
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "extended", "":
		return Extended, nil
	case "minimal":
		return Minimal, nil
	default:
		return 0, fmt.Errorf("unknown dialect %q (want minimal or extended)", s)
	}
}

// DefaultMaxDiagnostics bounds the diagnostics collected by a single parse.
const DefaultMaxDiagnostics = 1000

// Options configures a parse.
type Options struct {
	Dialect        Dialect
	MaxDiagnostics int // 0 means DefaultMaxDiagnostics
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Parser is a collect-mode recursive-descent parser over a token stream.
// After a failure it records one diagnostic, skips to the next statement
// boundary and carries on. Running out of input inside a construct stops it.
type Parser struct {
	stream *lexer.Stream
	opts   Options

	curToken  lexer.Token
	peekToken lexer.Token

	// Brackets opened by the statement being parsed and not yet closed.
	brackets *arraystack.Stack[lexer.TokenType]

	diags  []errors.Diagnostic
	halted bool
}

// Parse tokenizes and parses src.
func Parse(src string, opts Options) (*Program, []errors.Diagnostic) {
	return ParseTokens(lexer.Tokenize(src), opts)
}

// ParseTokens parses an already tokenized source. The returned program holds
// every declaration that parsed cleanly; it is only meaningful as a whole
// when no diagnostics were returned.
func ParseTokens(tokens []lexer.Token, opts Options) (*Program, []errors.Diagnostic) {
	return NewParser(lexer.NewStream(tokens), opts).ParseProgram()
}

// NewParser creates a new Parser.
func NewParser(stream *lexer.Stream, opts Options) *Parser {
	p := &Parser{
		stream:   stream,
		opts:     opts,
		brackets: arraystack.New[lexer.TokenType](),
	}
	p.syncTokens()
	return p
}

// Diagnostics returns the diagnostics collected so far.
func (p *Parser) Diagnostics() []errors.Diagnostic {
	return p.diags
}

// ParseProgram parses top-level statements until end of input.
func (p *Parser) ParseProgram() (*Program, []errors.Diagnostic) {
	program := &Program{}

	for !p.halted && !p.curTokenIs(lexer.EOF) {
		start := p.stream.Index()
		p.brackets.Clear()

		switch p.curToken.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			continue
		case lexer.IMPORT:
			if decl := p.parseImportDeclaration(); decl != nil {
				program.Imports = append(program.Imports, decl)
				continue
			}
		case lexer.CONST:
			if decl := p.parseConstDeclaration(); decl != nil {
				program.Consts = append(program.Consts, decl)
				continue
			}
		case lexer.FN:
			if p.opts.Dialect == Minimal {
				p.skipUnsupportedFunction()
				continue
			}
			if decl := p.parseFunctionDeclaration(); decl != nil {
				program.Functions = append(program.Functions, decl)
				continue
			}
		default:
			p.topLevelError()
		}
		p.synchronize(start, 0, false)
	}

	return program, p.diags
}

// --- Token movement ---

func (p *Parser) syncTokens() {
	p.curToken = p.stream.Current()
	p.peekToken = p.stream.Peek(1)
}

// nextToken advances the current and peek tokens.
func (p *Parser) nextToken() {
	p.stream.Advance()
	p.syncTokens()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expect consumes the current token if it has type t. Otherwise it reports
// the mismatch and returns false.
func (p *Parser) expect(t lexer.TokenType, expected string) (lexer.Token, bool) {
	tok := p.curToken
	if tok.Type != t {
		p.unexpected(expected)
		return tok, false
	}
	p.nextToken()
	return tok, true
}

func (p *Parser) open() {
	p.brackets.Push(p.curToken.Type)
	p.nextToken()
}

func (p *Parser) close() lexer.Token {
	tok := p.curToken
	p.brackets.Pop()
	p.nextToken()
	return tok
}

// --- Statements ---

// parseImportDeclaration parses
// import (IDENT | "*" | "(" IDENT {"," IDENT} ")") from STRING ";"
func (p *Parser) parseImportDeclaration() *ImportDeclaration {
	decl := &ImportDeclaration{Token: p.curToken}
	p.nextToken()

	switch p.curToken.Type {
	case lexer.IDENT:
		decl.Members = &AllMembers{Name: segmentOf(p.curToken)}
		p.nextToken()
	case lexer.ASTERISK:
		decl.Members = &WildcardMembers{Loc: p.curToken.Span}
		p.nextToken()
	case lexer.LPAREN:
		members := p.parseNamedMembers()
		if members == nil {
			return nil
		}
		decl.Members = members
	case lexer.LBRACE:
		p.addDiag(errors.CurlyBracketImport(p.curToken.Pos, p.curToken.Span))
		p.skipBracedMembers()
		return nil
	default:
		p.unexpected("an identifier, `*` or `(`")
		return nil
	}

	if _, ok := p.expect(lexer.FROM, "`from`"); !ok {
		return nil
	}

	switch tok := p.curToken; tok.Type {
	case lexer.STRING:
		decl.Path = segmentOf(tok)
		p.nextToken()
	case lexer.EOF:
		p.endOfInput("a library path")
		return nil
	default:
		p.addDiag(errors.ImportMissingLibrary(tok.Pos, tok.Span, tok.Describe()))
		return nil
	}

	end, ok := p.expectSemicolon()
	if !ok {
		return nil
	}
	decl.Loc = decl.Token.Span.Cover(end.Span)
	return decl
}

// parseNamedMembers parses "(" IDENT {"," IDENT} ")".
func (p *Parser) parseNamedMembers() *NamedMembers {
	members := &NamedMembers{}
	p.open()

	for {
		tok := p.curToken
		switch tok.Type {
		case lexer.IDENT:
			members.Names = append(members.Names, segmentOf(tok))
			p.nextToken()
		case lexer.EOF:
			p.endOfInput("an import member")
			return nil
		default:
			p.malformedMembers(tok)
			return nil
		}

		switch tok := p.curToken; tok.Type {
		case lexer.COMMA:
			p.nextToken()
		case lexer.RPAREN:
			p.close()
			return members
		case lexer.EOF:
			p.endOfInput("`,` or `)`")
			return nil
		default:
			p.malformedMembers(tok)
			return nil
		}
	}
}

func (p *Parser) malformedMembers(tok lexer.Token) {
	switch tok.Type {
	case lexer.INVALID_NUMBER, lexer.ILLEGAL:
		p.unexpected("an import member")
	default:
		p.addDiag(errors.ImportMalformedMemberList(tok.Pos, tok.Span, tok.Describe()))
	}
}

// parseConstDeclaration parses const IDENT "=" expression ";"
func (p *Parser) parseConstDeclaration() *ConstDeclaration {
	decl := &ConstDeclaration{Token: p.curToken}
	p.nextToken()

	name, ok := p.expect(lexer.IDENT, "an identifier")
	if !ok {
		return nil
	}
	decl.Name = segmentOf(name)

	if _, ok := p.expect(lexer.ASSIGN, "`=`"); !ok {
		return nil
	}

	if decl.Value = p.parseExpression(); decl.Value == nil {
		return nil
	}

	end, ok := p.expectSemicolon()
	if !ok {
		return nil
	}
	decl.Loc = decl.Token.Span.Cover(end.Span)
	return decl
}

// parseFunctionDeclaration parses
// fn IDENT "(" [param {"," param}] ")" "->" type block
func (p *Parser) parseFunctionDeclaration() *FunctionDeclaration {
	decl := &FunctionDeclaration{Token: p.curToken}
	p.nextToken()

	name, ok := p.expect(lexer.IDENT, "a function name")
	if !ok {
		return nil
	}
	decl.Name = segmentOf(name)

	if !p.curTokenIs(lexer.LPAREN) {
		p.unexpected("`(`")
		return nil
	}
	p.open()

	if p.curTokenIs(lexer.RPAREN) {
		p.close()
	} else {
		for {
			param := p.parseParameter()
			if param == nil {
				return nil
			}
			decl.Params = append(decl.Params, param)

			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			if p.curTokenIs(lexer.RPAREN) {
				p.close()
				break
			}
			p.unexpected("`,` or `)`")
			return nil
		}
	}

	if _, ok := p.expect(lexer.ARROW, "`->`"); !ok {
		return nil
	}
	if decl.ReturnType, ok = p.parseType(); !ok {
		return nil
	}

	if decl.Body = p.parseBlock(); decl.Body == nil {
		return nil
	}
	decl.Loc = decl.Token.Span.Cover(decl.Body.Loc)
	return decl
}

// parseParameter parses IDENT ":" type. The lexer turns `x:int` into an
// identifier followed by an atom, which is accepted as well.
func (p *Parser) parseParameter() *Parameter {
	name, ok := p.expect(lexer.IDENT, "a parameter name")
	if !ok {
		return nil
	}
	param := &Parameter{Name: segmentOf(name)}

	switch tok := p.curToken; tok.Type {
	case lexer.ATOM:
		tag, found := LookupType(tok.Payload())
		if !found {
			p.unknownType(tok, tok.Payload())
			return nil
		}
		param.Type = tag
		p.nextToken()
		return param
	case lexer.COLON:
		p.nextToken()
	default:
		p.unexpected("`:`")
		return nil
	}

	if param.Type, ok = p.parseType(); !ok {
		return nil
	}
	return param
}

func (p *Parser) parseType() (TypeTag, bool) {
	tok, ok := p.expect(lexer.IDENT, "a type")
	if !ok {
		return 0, false
	}
	tag, found := LookupType(tok.Literal)
	if !found {
		p.unknownType(tok, tok.Literal)
		return 0, false
	}
	return tag, true
}

func (p *Parser) unknownType(tok lexer.Token, name string) {
	p.addDiag(errors.UnexpectedToken(tok.Pos, tok.Span, "a type", tok.Describe()).
		Message("unknown type `%s`", name).
		Note("the built-in types are int, float, char, str, bool and void"))
}

// parseBlock parses "{" {statement} "}".
func (p *Parser) parseBlock() *Block {
	if !p.curTokenIs(lexer.LBRACE) {
		p.unexpected("`{`")
		return nil
	}
	block := &Block{Token: p.curToken}
	p.open()
	depth := p.brackets.Size()

	for !p.halted {
		switch p.curToken.Type {
		case lexer.RBRACE:
			end := p.close()
			block.Loc = block.Token.Span.Cover(end.Span)
			return block
		case lexer.EOF:
			p.endOfInput("`}`")
			return nil
		case lexer.SEMICOLON:
			p.nextToken()
			continue
		case lexer.IMPORT, lexer.CONST:
			// Only valid at top level: the block was never closed.
			if !p.reportedAt(p.curToken) {
				p.unexpected("`}`")
			}
			return nil
		}

		start := p.stream.Index()
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
			continue
		}
		p.synchronize(start, depth, true)
		for p.brackets.Size() > depth {
			p.brackets.Pop()
		}
	}
	return nil
}

// parseStatement parses a nested function, a nested block or an expression
// followed by ";".
func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case lexer.FN:
		if fn := p.parseFunctionDeclaration(); fn != nil {
			return fn
		}
		return nil
	case lexer.LBRACE:
		if b := p.parseBlock(); b != nil {
			return b
		}
		return nil
	}

	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	end, ok := p.expectSemicolon()
	if !ok {
		return nil
	}
	return &ExpressionStatement{Expression: expr, Loc: expr.Span().Cover(end.Span)}
}

// --- Expressions ---

// parseExpression parses a value optionally followed by one operator and a
// second value. Operators are rejected in the minimal dialect, and a second
// operator is rejected everywhere.
func (p *Parser) parseExpression() Expression {
	left := p.parseValue()
	if left == nil {
		return nil
	}
	op, ok := operatorFor(p.curToken.Type)
	if !ok {
		return left
	}
	if p.opts.Dialect == Minimal {
		p.addDiag(errors.UnimplementedFeature(p.curToken.Pos, p.curToken.Span, "binary expressions").
			Note("binary expressions are only available in the extended dialect"))
		return nil
	}
	p.nextToken()

	right := p.parseValue()
	if right == nil {
		return nil
	}
	if p.curToken.Type.IsOperator() {
		p.addDiag(errors.UnimplementedFeature(p.curToken.Pos, p.curToken.Span, "chained binary expressions").
			Note("an expression holds at most one operator"))
		return nil
	}
	return &BinaryExpression{Left: left, Operator: op, Right: right}
}

// parseValue parses a single literal, identifier or call.
func (p *Parser) parseValue() Expression {
	tok := p.curToken
	var expr Expression

	switch tok.Type {
	case lexer.INTEGER:
		expr = &IntegerLiteral{Token: tok, Value: tok.Int}
	case lexer.FLOAT:
		expr = &FloatLiteral{Token: tok, Value: tok.Float}
	case lexer.CHAR:
		expr = &CharLiteral{Token: tok, Value: tok.Char}
	case lexer.STRING:
		expr = &StringLiteral{Token: tok, Value: tok.Payload()}
	case lexer.BOOLEAN:
		expr = &BooleanLiteral{Token: tok, Value: tok.Bool}
	case lexer.NULL:
		expr = &NullLiteral{Token: tok}
	case lexer.UNDEFINED:
		expr = &UndefinedLiteral{Token: tok}
	case lexer.ATOM:
		expr = &AtomLiteral{Token: tok, Value: tok.Payload()}
	case lexer.IDENT:
		if p.peekTokenIs(lexer.LPAREN) {
			if p.opts.Dialect == Minimal {
				p.addDiag(errors.UnimplementedFeature(p.peekToken.Pos, p.peekToken.Span, "call expressions").
					Note("calls are only available in the extended dialect"))
				return nil
			}
			if call := p.parseCallExpression(); call != nil {
				return call
			}
			return nil
		}
		expr = &Identifier{Token: tok, Value: tok.Literal}
	case lexer.LBRACKET:
		p.addDiag(errors.UnimplementedFeature(tok.Pos, tok.Span, "array literals"))
		return nil
	case lexer.LBRACE:
		p.addDiag(errors.UnimplementedFeature(tok.Pos, tok.Span, "block expressions"))
		return nil
	default:
		p.unexpected("a value")
		return nil
	}

	p.nextToken()
	return expr
}

// parseCallExpression parses IDENT "(" [expression {"," expression}] ")".
func (p *Parser) parseCallExpression() *CallExpression {
	call := &CallExpression{Callee: segmentOf(p.curToken)}
	start := p.curToken.Span
	p.nextToken()
	p.open()

	if p.curTokenIs(lexer.RPAREN) {
		call.Loc = start.Cover(p.close().Span)
		return call
	}
	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)

		switch p.curToken.Type {
		case lexer.COMMA:
			p.nextToken()
		case lexer.RPAREN:
			call.Loc = start.Cover(p.close().Span)
			return call
		default:
			p.unexpected("`,` or `)`")
			return nil
		}
	}
}

func (p *Parser) expectSemicolon() (lexer.Token, bool) {
	tok := p.curToken
	switch tok.Type {
	case lexer.SEMICOLON:
		p.nextToken()
		return tok, true
	case lexer.EOF:
		p.endOfInput("`;`")
	case lexer.INVALID_NUMBER, lexer.ILLEGAL:
		p.unexpected("`;`")
	default:
		p.addDiag(errors.ExpectedSemicolon(tok.Pos, tok.Span, tok.Describe()))
	}
	return tok, false
}

// --- Error Handling ---

// addDiag records a diagnostic. Reaching the configured limit stops the
// parse, and the last diagnostic says so.
func (p *Parser) addDiag(b *errors.Builder) {
	if p.halted {
		return
	}
	p.diags = append(p.diags, b.Build())

	limit := p.opts.maxDiagnostics()
	if len(p.diags) >= limit {
		last := len(p.diags) - 1
		p.diags[last] = p.diags[last].WithNote(fmt.Sprintf("too many errors (limit: %d), stopping parser", limit))
		p.halted = true
	}
}

// reportedAt reports whether the last diagnostic points at tok.
func (p *Parser) reportedAt(tok lexer.Token) bool {
	n := len(p.diags)
	return n > 0 && p.diags[n-1].Span == tok.Span
}

// endOfInput reports that input ended while expected was still required,
// and stops the parse.
func (p *Parser) endOfInput(expected string) {
	tok := p.curToken
	p.addDiag(errors.UnexpectedEndOfInput(tok.Pos, tok.Span, expected))
	p.halted = true
}

// unexpected reports the current token in a position that required expected.
func (p *Parser) unexpected(expected string) {
	tok := p.curToken
	switch tok.Type {
	case lexer.EOF:
		p.endOfInput(expected)
	case lexer.INVALID_NUMBER:
		p.addDiag(errors.InvalidNumber(tok.Pos, tok.Span, tok.Literal))
	case lexer.ILLEGAL:
		p.illegal(tok, expected)
	default:
		p.addDiag(errors.UnexpectedToken(tok.Pos, tok.Span, expected, tok.Describe()).
			Message("unexpected %s", tok.Describe()))
	}
}

func (p *Parser) illegal(tok lexer.Token, expected string) {
	b := errors.UnexpectedToken(tok.Pos, tok.Span, expected, tok.Describe())
	switch {
	case strings.HasPrefix(tok.Literal, `"`):
		b.Message("unterminated string literal").Hint("add a closing `\"`")
	case strings.HasPrefix(tok.Literal, "'"):
		b.Message("invalid character literal").Hint("character literals hold exactly one character")
	default:
		b.Message("unknown character `%s`", tok.Literal)
	}
	p.addDiag(b)
}

// topLevelError reports a token that cannot start a top-level statement.
func (p *Parser) topLevelError() {
	tok := p.curToken
	switch tok.Type {
	case lexer.LBRACE:
		p.addDiag(errors.UnimplementedFeature(tok.Pos, tok.Span, "block literals"))
	case lexer.LBRACKET:
		p.addDiag(errors.UnimplementedFeature(tok.Pos, tok.Span, "array literals"))
	case lexer.RBRACE, lexer.RBRACKET, lexer.RPAREN:
		p.addDiag(errors.UnexpectedToken(tok.Pos, tok.Span, "a statement", tok.Describe()).
			Message("unmatched %s", tok.Describe()))
	case lexer.FROM:
		p.addDiag(errors.UnexpectedToken(tok.Pos, tok.Span, "a statement", tok.Describe()).
			Message("`from` without `import`").
			Hint(`imports are written as: import (a, b) from "lib";`))
	case lexer.INVALID_NUMBER, lexer.ILLEGAL:
		p.unexpected("a statement")
	default:
		p.addDiag(errors.UnexpectedToken(tok.Pos, tok.Span, "`import`, `const` or `fn`", tok.Describe()).
			Message("unexpected token at top level"))
	}
}

// --- Recovery ---

var closers = map[lexer.TokenType]lexer.TokenType{
	lexer.RPAREN:   lexer.LPAREN,
	lexer.RBRACE:   lexer.LBRACE,
	lexer.RBRACKET: lexer.LBRACKET,
}

func isOpener(t lexer.TokenType) bool {
	return t == lexer.LPAREN || t == lexer.LBRACE || t == lexer.LBRACKET
}

// synchronize skips from the failing token to the next statement boundary:
//   - a `;` outside any bracket or directly inside parentheses or square
//     brackets, where it can only end the statement, which is consumed;
//   - the closer of the outermost bracket opened during the skip, or the
//     `}` of a body the failed statement left open, which is consumed;
//   - a statement keyword past the failed statement's first token, which is
//     left for the next statement. `import` and `const` only occur at top
//     level and stop the skip even inside the failed statement's brackets;
//     `fn` stops it only outside all brackets;
//   - inside a block, the block's own `}`, which is left for the block.
//
// Brackets below depth belong to enclosing constructs and are never closed
// here. A failing opener without a matching closer is skipped as a stray
// token so that it cannot swallow the rest of the input. Reaching end of
// input ends the skip.
func (p *Parser) synchronize(start, depth int, inBlock bool) {
	if p.halted {
		return
	}
	if isOpener(p.curToken.Type) && !p.closed(p.stream.Index()) {
		p.nextToken()
	}
	skipped := arraystack.New[lexer.TokenType]()

	for !p.curTokenIs(lexer.EOF) {
		t := p.curToken.Type
		atTop := skipped.Empty() && p.brackets.Size() <= depth

		switch {
		case isOpener(t):
			skipped.Push(t)
		case closers[t] != "":
			if open, ok := skipped.Peek(); ok {
				if open == closers[t] {
					skipped.Pop()
					if skipped.Empty() && p.brackets.Size() <= depth {
						p.nextToken()
						return
					}
				}
			} else if p.brackets.Size() > depth {
				if open, _ := p.brackets.Peek(); open == closers[t] {
					p.brackets.Pop()
					if t == lexer.RBRACE && p.brackets.Size() <= depth {
						p.nextToken()
						return
					}
				}
			} else if inBlock && t == lexer.RBRACE {
				return
			}
		case t == lexer.SEMICOLON && p.innermost(skipped, depth) != lexer.LBRACE:
			p.nextToken()
			return
		case (t == lexer.IMPORT || t == lexer.CONST) && skipped.Empty() && p.stream.Index() > start:
			return
		case t == lexer.FN && atTop && p.stream.Index() > start:
			return
		}
		p.nextToken()
	}
}

// innermost returns the innermost bracket still open in the failed statement,
// or "" when there is none.
func (p *Parser) innermost(skipped *arraystack.Stack[lexer.TokenType], depth int) lexer.TokenType {
	if top, ok := skipped.Peek(); ok {
		return top
	}
	if p.brackets.Size() > depth {
		top, _ := p.brackets.Peek()
		return top
	}
	return ""
}

// closed reports whether the opener at index i has a matching closer. A `;`
// directly inside parentheses or square brackets ends the statement, so the
// opener is unclosed.
func (p *Parser) closed(i int) bool {
	open := arraystack.New[lexer.TokenType]()
	for ; ; i++ {
		t := p.stream.At(i).Type
		switch {
		case t == lexer.EOF:
			return false
		case t == lexer.SEMICOLON:
			if top, _ := open.Peek(); top != lexer.LBRACE {
				return false
			}
		case isOpener(t):
			open.Push(t)
		case closers[t] != "":
			if top, _ := open.Pop(); top != closers[t] {
				return false
			}
			if open.Empty() {
				return true
			}
		}
	}
}

// skipBracedMembers skips a `{...}` import member list, closing brace
// included. It stops early at a `;` or a statement keyword.
func (p *Parser) skipBracedMembers() {
	p.nextToken()
	for {
		switch p.curToken.Type {
		case lexer.RBRACE:
			p.nextToken()
			return
		case lexer.SEMICOLON, lexer.EOF, lexer.IMPORT, lexer.CONST, lexer.FN:
			return
		}
		p.nextToken()
	}
}

// skipUnsupportedFunction reports a function declaration in the minimal
// dialect and skips it whole, body included.
func (p *Parser) skipUnsupportedFunction() {
	tok := p.curToken
	p.addDiag(errors.UnimplementedFeature(tok.Pos, tok.Span, "function declarations").
		Note("function declarations are only available in the extended dialect"))

	p.nextToken()
	depth := 0
	for !p.curTokenIs(lexer.EOF) {
		switch p.curToken.Type {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			depth--
			if depth <= 0 {
				p.nextToken()
				return
			}
		case lexer.SEMICOLON:
			if depth == 0 {
				p.nextToken()
				return
			}
		case lexer.IMPORT, lexer.CONST, lexer.FN:
			if depth == 0 {
				return
			}
		}
		p.nextToken()
	}
}
