package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dump converts a node into plain maps and slices suitable for JSON or YAML
// encoding. Every node map carries a "type" key and a "span" key.
func Dump(n Node) map[string]any {
	m := map[string]any{
		"type": nodeType(n),
		"span": n.Span().String(),
	}
	switch n := n.(type) {
	case *Program:
		m["imports"] = dumpEach(n.Imports)
		m["consts"] = dumpEach(n.Consts)
		m["functions"] = dumpEach(n.Functions)
	case *ImportDeclaration:
		m["path"] = n.Path.Text
		m["members"] = dumpMembers(n.Members)
	case *ConstDeclaration:
		m["name"] = n.Name.Text
		m["value"] = Dump(n.Value)
	case *FunctionDeclaration:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = map[string]any{"name": p.Name.Text, "type": p.Type.String()}
		}
		m["name"] = n.Name.Text
		m["params"] = params
		m["returns"] = n.ReturnType.String()
		m["body"] = Dump(n.Body)
	case *Block:
		m["statements"] = dumpEach(n.Statements)
	case *ExpressionStatement:
		m["expression"] = Dump(n.Expression)
	case *CallExpression:
		m["callee"] = n.Callee.Text
		m["args"] = dumpEach(n.Args)
	case *BinaryExpression:
		m["operator"] = n.Operator.String()
		m["left"] = Dump(n.Left)
		m["right"] = Dump(n.Right)
	case *Identifier:
		m["name"] = n.Value
	case *IntegerLiteral:
		m["value"] = n.Value
	case *FloatLiteral:
		m["value"] = n.Value
	case *CharLiteral:
		m["value"] = string(n.Value)
	case *StringLiteral:
		m["value"] = n.Value
	case *BooleanLiteral:
		m["value"] = n.Value
	case *AtomLiteral:
		m["value"] = n.Value
	}
	return m
}

func dumpEach[T Node](nodes []T) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = Dump(n)
	}
	return out
}

func dumpMembers(members ImportMembers) map[string]any {
	switch m := members.(type) {
	case *AllMembers:
		return map[string]any{"kind": "all", "name": m.Name.Text}
	case *WildcardMembers:
		return map[string]any{"kind": "wildcard"}
	case *NamedMembers:
		names := make([]string, len(m.Names))
		for i, n := range m.Names {
			names[i] = n.Text
		}
		return map[string]any{"kind": "named", "names": names}
	}
	return nil
}

func nodeType(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*parser.")
}

// WriteJSON writes the dump of n as indented JSON.
func WriteJSON(w io.Writer, n Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Dump(n))
}

// WriteYAML writes the dump of n as YAML.
func WriteYAML(w io.Writer, n Node) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Dump(n)); err != nil {
		return err
	}
	return encoder.Close()
}

// Tree renders n as an indented outline, one node per line.
func Tree(n Node) string {
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n Node, depth int) {
	pad := strings.Repeat(indentUnit, depth)
	line := func(format string, args ...any) {
		b.WriteString(pad)
		fmt.Fprintf(b, format, args...)
		fmt.Fprintf(b, " @%s\n", n.Span())
	}

	switch n := n.(type) {
	case *Program:
		b.WriteString("Program\n")
		for _, d := range n.Imports {
			writeTree(b, d, depth+1)
		}
		for _, d := range n.Consts {
			writeTree(b, d, depth+1)
		}
		for _, d := range n.Functions {
			writeTree(b, d, depth+1)
		}
	case *ImportDeclaration:
		line("Import %q members=%s", n.Path.Text, n.Members)
	case *ConstDeclaration:
		line("Const %s", n.Name.Text)
		writeTree(b, n.Value, depth+1)
	case *FunctionDeclaration:
		line("Function %s", n.Signature())
		for _, s := range n.Body.Statements {
			writeTree(b, s, depth+1)
		}
	case *Block:
		line("Block")
		for _, s := range n.Statements {
			writeTree(b, s, depth+1)
		}
	case *ExpressionStatement:
		writeTree(b, n.Expression, depth)
	case *CallExpression:
		line("Call %s", n.Callee.Text)
		for _, a := range n.Args {
			writeTree(b, a, depth+1)
		}
	case *BinaryExpression:
		line("Binary %s", n.Operator)
		writeTree(b, n.Left, depth+1)
		writeTree(b, n.Right, depth+1)
	default:
		line("%s %s", nodeType(n), n)
	}
}
