package parser

import (
	"bytes"
	"strings"

	"qlang/pkg/lexer"
	"qlang/pkg/source"
)

// --- Interfaces ---

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string // Returns the literal value of the token associated with the node
	String() string       // Returns the canonical source form of the node
	Span() source.Span    // Byte range covered by the node
}

// Statement represents a statement inside a function body.
type Statement interface {
	Node
	statementNode()
}

// Expression represents a value-producing node.
type Expression interface {
	Node
	expressionNode()
}

// Segment pairs a span of the source with the text it covers.
type Segment struct {
	Span source.Span
	Text string
}

func segmentOf(tok lexer.Token) Segment {
	return Segment{Span: tok.Value, Text: tok.Payload()}
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Imports   []*ImportDeclaration
	Consts    []*ConstDeclaration
	Functions []*FunctionDeclaration
}

func (p *Program) TokenLiteral() string {
	switch {
	case len(p.Imports) > 0:
		return p.Imports[0].TokenLiteral()
	case len(p.Consts) > 0:
		return p.Consts[0].TokenLiteral()
	case len(p.Functions) > 0:
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

// String re-emits the program as canonical source: imports, then consts,
// then functions, one declaration per line.
func (p *Program) String() string {
	var pr printer
	pr.program(p)
	return pr.String()
}

// Span covers every declaration in the program.
func (p *Program) Span() source.Span {
	var span source.Span
	first := true
	cover := func(s source.Span) {
		if first {
			span, first = s, false
			return
		}
		span = span.Cover(s)
	}
	for _, d := range p.Imports {
		cover(d.Span())
	}
	for _, d := range p.Consts {
		cover(d.Span())
	}
	for _, d := range p.Functions {
		cover(d.Span())
	}
	return span
}

// Empty reports whether the program declares nothing.
func (p *Program) Empty() bool {
	return len(p.Imports) == 0 && len(p.Consts) == 0 && len(p.Functions) == 0
}

// --- Declarations ---

// ImportDeclaration represents `import <members> from "<path>";`.
type ImportDeclaration struct {
	Token   lexer.Token // The lexer.IMPORT token
	Members ImportMembers
	Path    Segment // Library path, quotes trimmed
	Loc     source.Span
}

func (id *ImportDeclaration) TokenLiteral() string { return id.Token.Literal }
func (id *ImportDeclaration) Span() source.Span    { return id.Loc }
func (id *ImportDeclaration) String() string {
	return "import " + id.Members.String() + ` from "` + id.Path.Text + `";`
}

// ImportMembers is the member list of an import: AllMembers, WildcardMembers
// or NamedMembers.
type ImportMembers interface {
	String() string
	importMembers()
}

// AllMembers imports a whole library under one name: `import std from "std";`
type AllMembers struct {
	Name Segment
}

func (m *AllMembers) importMembers()  {}
func (m *AllMembers) String() string { return m.Name.Text }

// WildcardMembers imports every member: `import * from "std";`
type WildcardMembers struct {
	Loc source.Span
}

func (m *WildcardMembers) importMembers()  {}
func (m *WildcardMembers) String() string { return "*" }

// NamedMembers imports a parenthesized list: `import (a, b) from "std";`
type NamedMembers struct {
	Names []Segment
}

func (m *NamedMembers) importMembers() {}
func (m *NamedMembers) String() string {
	names := make([]string, len(m.Names))
	for i, n := range m.Names {
		names[i] = n.Text
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// ConstDeclaration represents `const <Name> = <Value>;`.
type ConstDeclaration struct {
	Token lexer.Token // The lexer.CONST token
	Name  Segment
	Value Expression
	Loc   source.Span
}

func (cd *ConstDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ConstDeclaration) Span() source.Span    { return cd.Loc }
func (cd *ConstDeclaration) String() string {
	return "const " + cd.Name.Text + " = " + cd.Value.String() + ";"
}

// Parameter is a single `name: type` function parameter.
type Parameter struct {
	Name Segment
	Type TypeTag
}

func (p *Parameter) String() string {
	return p.Name.Text + ": " + p.Type.String()
}

// FunctionDeclaration represents
// `fn <Name>(<Params>) -> <ReturnType> { <Body> }`.
type FunctionDeclaration struct {
	Token      lexer.Token // The lexer.FN token
	Name       Segment
	Params     []*Parameter
	ReturnType TypeTag
	Body       *Block
	Loc        source.Span
}

func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDeclaration) Span() source.Span    { return fd.Loc }
func (fd *FunctionDeclaration) String() string {
	var pr printer
	pr.function(fd)
	return pr.String()
}

// Signature renders the declaration without its body.
func (fd *FunctionDeclaration) Signature() string {
	var out bytes.Buffer
	out.WriteString("fn " + fd.Name.Text + "(")
	for i, p := range fd.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(") -> " + fd.ReturnType.String())
	return out.String()
}

// --- Statements ---

// Block is a brace-delimited list of statements.
type Block struct {
	Token      lexer.Token // The lexer.LBRACE token
	Statements []Statement
	Loc        source.Span
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Span() source.Span    { return b.Loc }
func (b *Block) String() string {
	var pr printer
	pr.block(b)
	return pr.String()
}

// ExpressionStatement is an expression terminated by `;` inside a block.
type ExpressionStatement struct {
	Expression Expression
	Loc        source.Span // Includes the semicolon
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Expression.TokenLiteral() }
func (es *ExpressionStatement) Span() source.Span    { return es.Loc }
func (es *ExpressionStatement) String() string       { return es.Expression.String() + ";" }

// --- Expressions ---

// Identifier represents a name used as a value.
type Identifier struct {
	Token lexer.Token // The lexer.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Span() source.Span    { return i.Token.Span }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral represents a 32-bit integer.
type IntegerLiteral struct {
	Token lexer.Token
	Value int32
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Span() source.Span    { return il.Token.Span }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral represents a 32-bit float.
type FloatLiteral struct {
	Token lexer.Token
	Value float32
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Span() source.Span    { return fl.Token.Span }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// CharLiteral represents a single quoted character.
type CharLiteral struct {
	Token lexer.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CharLiteral) Span() source.Span    { return cl.Token.Span }
func (cl *CharLiteral) String() string       { return "'" + string(cl.Value) + "'" }

// StringLiteral represents a double-quoted string. Escapes are kept verbatim.
type StringLiteral struct {
	Token lexer.Token
	Value string // Quotes trimmed
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Span() source.Span    { return sl.Token.Span }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Span() source.Span    { return bl.Token.Span }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "true"
	}
	return "false"
}

// NullLiteral represents null.
type NullLiteral struct {
	Token lexer.Token
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) Span() source.Span    { return nl.Token.Span }
func (nl *NullLiteral) String() string       { return "null" }

// UndefinedLiteral represents undefined.
type UndefinedLiteral struct {
	Token lexer.Token
}

func (ul *UndefinedLiteral) expressionNode()      {}
func (ul *UndefinedLiteral) TokenLiteral() string { return ul.Token.Literal }
func (ul *UndefinedLiteral) Span() source.Span    { return ul.Token.Span }
func (ul *UndefinedLiteral) String() string       { return "undefined" }

// AtomLiteral represents a symbolic constant such as :ok.
type AtomLiteral struct {
	Token lexer.Token
	Value string // Name without the leading colon
}

func (al *AtomLiteral) expressionNode()      {}
func (al *AtomLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *AtomLiteral) Span() source.Span    { return al.Token.Span }
func (al *AtomLiteral) String() string       { return ":" + al.Value }

// CallExpression represents `callee(arg, ...)`.
type CallExpression struct {
	Callee Segment
	Args   []Expression
	Loc    source.Span
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Callee.Text }
func (ce *CallExpression) Span() source.Span    { return ce.Loc }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	return ce.Callee.Text + "(" + strings.Join(args, ", ") + ")"
}

// BinaryExpression is a single operator applied to two values. There is no
// precedence: the grammar allows exactly one operator.
type BinaryExpression struct {
	Left     Expression
	Operator Operator
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Operator.String() }
func (be *BinaryExpression) Span() source.Span    { return be.Left.Span().Cover(be.Right.Span()) }
func (be *BinaryExpression) String() string {
	return be.Left.String() + " " + be.Operator.String() + " " + be.Right.String()
}
