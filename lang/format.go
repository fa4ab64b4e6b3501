package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sexpr renders an expression or statement in parenthesized prefix form,
// e.g. "(+ 10 (* 10 10))".
func Sexpr(node any) string {
	var sb strings.Builder

	writeSexpr(&sb, node)

	return sb.String()
}

// Format writes each statement of the program in prefix form, one per line.
func (p *Program) Format(_ context.Context, w io.Writer) error {
	for _, s := range p.Statements {
		if _, err := fmt.Fprintln(w, Sexpr(s)); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program's statement tree as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program's statement tree as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(p.Statements), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTokens writes one token per line: kind, lexeme and literal.
func FormatTokens(w io.Writer, tokens []Token) error {
	for _, t := range tokens {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}

	return nil
}

func writeSexpr(sb *strings.Builder, node any) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("nil")

	case *Literal:
		if s, ok := n.Value.(String); ok {
			sb.WriteString(strconv.Quote(string(s)))
		} else {
			sb.WriteString(Stringify(n.Value))
		}

	case *Variable:
		sb.WriteString(n.Name.Lexeme)

	case *Assign:
		parenthesize(sb, "=", n.Name.Lexeme, n.Value)

	case *Binary:
		parenthesize(sb, n.Operator.Lexeme, n.Left, n.Right)

	case *Logical:
		parenthesize(sb, n.Operator.Lexeme, n.Left, n.Right)

	case *Unary:
		parenthesize(sb, n.Operator.Lexeme, n.Right)

	case *Grouping:
		parenthesize(sb, "group", n.Expression)

	case *Call:
		parts := make([]any, 0, len(n.Arguments)+1)
		parts = append(parts, n.Callee)

		for _, a := range n.Arguments {
			parts = append(parts, a)
		}

		parenthesize(sb, "call", parts...)

	case *Expression:
		parenthesize(sb, ";", n.Expression)

	case *Print:
		parenthesize(sb, "print", n.Expression)

	case *Var:
		if n.Initializer == nil {
			parenthesize(sb, "var", n.Name.Lexeme)
		} else {
			parenthesize(sb, "var", n.Name.Lexeme, n.Initializer)
		}

	case *Block:
		parenthesize(sb, "block", stmtParts(n.Statements)...)

	case *If:
		if n.Else == nil {
			parenthesize(sb, "if", n.Condition, n.Then)
		} else {
			parenthesize(sb, "if", n.Condition, n.Then, n.Else)
		}

	case *While:
		parenthesize(sb, "while", n.Condition, n.Body)

	case *Function:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}

		parts := []any{n.Name.Lexeme, "(" + strings.Join(params, " ") + ")"}
		parenthesize(sb, "fun", append(parts, stmtParts(n.Body)...)...)

	case *Return:
		if n.Value == nil {
			parenthesize(sb, "return")
		} else {
			parenthesize(sb, "return", n.Value)
		}

	case string:
		sb.WriteString(n)

	default:
		sb.WriteString("<" + resultTypeName(node) + ">")
	}
}

func parenthesize(sb *strings.Builder, name string, parts ...any) {
	sb.WriteString("(")
	sb.WriteString(name)

	for _, part := range parts {
		sb.WriteString(" ")
		writeSexpr(sb, part)
	}

	sb.WriteString(")")
}

func stmtParts(stmts []Stmt) []any {
	parts := make([]any, len(stmts))
	for i, s := range stmts {
		parts[i] = s
	}

	return parts
}
