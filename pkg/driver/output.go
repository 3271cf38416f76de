package driver

import (
	"fmt"
	"io"
	"text/tabwriter"

	"qlang/pkg/lexer"
	"qlang/pkg/parser"
)

// Formats lists the program output formats WriteProgram accepts.
var Formats = []string{"tree", "json", "yaml", "source"}

// WriteProgram writes program to w in the named format.
func WriteProgram(w io.Writer, program *parser.Program, format string) error {
	switch format {
	case "", "tree":
		_, err := io.WriteString(w, parser.Tree(program))
		return err
	case "json":
		return parser.WriteJSON(w, program)
	case "yaml":
		return parser.WriteYAML(w, program)
	case "source":
		_, err := io.WriteString(w, program.String())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteTokens writes one token per line: position, span, type and lexeme.
func WriteTokens(w io.Writer, tokens []lexer.Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%q\n", tok.Pos, tok.Span, tok.Type, tok.Literal); err != nil {
			return err
		}
	}
	return tw.Flush()
}
