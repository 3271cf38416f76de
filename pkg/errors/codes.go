package errors

import "fmt"

// Code is the stable numeric identifier of a diagnostic kind.
type Code uint16

const (
	CodeUnknown Code = 1000 + iota // reserved
	CodeUnexpectedToken
	CodeUnexpectedEndOfInput
	CodeImportMissingLibrary
	CodeImportMalformedMemberList
	CodeInvalidNumberLiteral
	CodeExpectedSemicolon
	CodeUnimplementedFeature
)

var codeNames = map[Code]string{
	CodeUnknown:                   "Unknown",
	CodeUnexpectedToken:           "UnexpectedToken",
	CodeUnexpectedEndOfInput:      "UnexpectedEndOfInput",
	CodeImportMissingLibrary:      "ImportMissingLibrary",
	CodeImportMalformedMemberList: "ImportMalformedMemberList",
	CodeInvalidNumberLiteral:      "InvalidNumberLiteral",
	CodeExpectedSemicolon:         "ExpectedSemicolon",
	CodeUnimplementedFeature:      "UnimplementedFeature",
}

var defaultMessages = map[Code]string{
	CodeUnknown:                   "unknown error",
	CodeUnexpectedToken:           "unexpected token",
	CodeUnexpectedEndOfInput:      "unexpected end of input",
	CodeImportMissingLibrary:      "missing library in import statement",
	CodeImportMalformedMemberList: "malformed import member list",
	CodeInvalidNumberLiteral:      "invalid number literal",
	CodeExpectedSemicolon:         "expected `;`",
	CodeUnimplementedFeature:      "unimplemented feature",
}

// Codes lists every known code in ascending order.
func Codes() []Code {
	return []Code{
		CodeUnknown,
		CodeUnexpectedToken,
		CodeUnexpectedEndOfInput,
		CodeImportMissingLibrary,
		CodeImportMalformedMemberList,
		CodeInvalidNumberLiteral,
		CodeExpectedSemicolon,
		CodeUnimplementedFeature,
	}
}

// String renders the code the way it appears in output, e.g. "E1005".
func (c Code) String() string {
	return fmt.Sprintf("E%d", uint16(c))
}

// Name returns the symbolic name of the code, e.g. "InvalidNumberLiteral".
func (c Code) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeUnknown]
}

// DefaultMessage is the message used when a diagnostic is built without one.
func (c Code) DefaultMessage() string {
	if msg, ok := defaultMessages[c]; ok {
		return msg
	}
	return defaultMessages[CodeUnknown]
}
