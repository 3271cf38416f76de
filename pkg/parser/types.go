package parser

import "qlang/pkg/lexer"

// TypeTag names one of the built-in types usable in function signatures.
type TypeTag int

const (
	TypeInt TypeTag = iota
	TypeFloat
	TypeChar
	TypeStr
	TypeBool
	TypeVoid
)

var typeNames = [...]string{
	TypeInt:   "int",
	TypeFloat: "float",
	TypeChar:  "char",
	TypeStr:   "str",
	TypeBool:  "bool",
	TypeVoid:  "void",
}

func (t TypeTag) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// LookupType maps a type name to its tag.
func LookupType(name string) (TypeTag, bool) {
	for i, n := range typeNames {
		if n == name {
			return TypeTag(i), true
		}
	}
	return 0, false
}

// Operator is a binary operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
)

var operatorTokens = [...]lexer.TokenType{
	OpAdd: lexer.PLUS,
	OpSub: lexer.MINUS,
	OpMul: lexer.ASTERISK,
	OpDiv: lexer.SLASH,
	OpMod: lexer.PERCENT,
	OpPow: lexer.CARET,
	OpLt:  lexer.LT,
	OpGt:  lexer.GT,
	OpLe:  lexer.LE,
	OpGe:  lexer.GE,
	OpEq:  lexer.EQ,
	OpNe:  lexer.NOT_EQ,
}

// String returns the operator's source spelling.
func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorTokens) {
		return "?"
	}
	return string(operatorTokens[op])
}

// operatorFor maps an operator token type to its Operator.
func operatorFor(t lexer.TokenType) (Operator, bool) {
	for i, tt := range operatorTokens {
		if tt == t {
			return Operator(i), true
		}
	}
	return 0, false
}
