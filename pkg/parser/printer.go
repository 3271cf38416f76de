package parser

import "strings"

const indentUnit = "  "

// printer writes canonical source with two-space indentation inside blocks.
type printer struct {
	out   strings.Builder
	depth int
}

func (p *printer) String() string { return p.out.String() }

func (p *printer) indent() {
	for i := 0; i < p.depth; i++ {
		p.out.WriteString(indentUnit)
	}
}

func (p *printer) line(s string) {
	p.indent()
	p.out.WriteString(s)
	p.out.WriteByte('\n')
}

func (p *printer) program(prog *Program) {
	for _, d := range prog.Imports {
		p.line(d.String())
	}
	for _, d := range prog.Consts {
		p.line(d.String())
	}
	for _, fn := range prog.Functions {
		p.function(fn)
	}
}

func (p *printer) function(fn *FunctionDeclaration) {
	p.indent()
	p.out.WriteString(fn.Signature())
	p.out.WriteByte(' ')
	p.body(fn.Body)
}

func (p *printer) block(b *Block) {
	p.indent()
	p.body(b)
}

// body writes "{", the statements one level deeper, and the closing "}".
// The caller has already written any indentation for the opening line.
func (p *printer) body(b *Block) {
	p.out.WriteString("{\n")
	p.depth++
	if b != nil {
		for _, s := range b.Statements {
			p.statement(s)
		}
	}
	p.depth--
	p.line("}")
}

func (p *printer) statement(s Statement) {
	switch s := s.(type) {
	case *FunctionDeclaration:
		p.function(s)
	case *Block:
		p.block(s)
	default:
		p.line(s.String())
	}
}
