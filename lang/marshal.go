package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToMap(p.Statements))
}

// ToMap converts statements to native Go maps and slices suitable for
// generic encoders. Each node is a map with a "node" key naming its type.
func ToMap(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = stmtToMap(s)
	}

	return out
}

func stmtToMap(s Stmt) any {
	switch s := s.(type) {
	case nil:
		return nil

	case *Expression:
		return map[string]any{
			"node":       "Expression",
			"expression": exprToMap(s.Expression),
		}

	case *Print:
		return map[string]any{
			"node":       "Print",
			"expression": exprToMap(s.Expression),
		}

	case *Var:
		m := map[string]any{
			"node": "Var",
			"name": s.Name.Lexeme,
			"line": s.Name.Line,
		}

		if s.Initializer != nil {
			m["initializer"] = exprToMap(s.Initializer)
		}

		return m

	case *Block:
		return map[string]any{
			"node":       "Block",
			"statements": ToMap(s.Statements),
		}

	case *If:
		m := map[string]any{
			"node":      "If",
			"condition": exprToMap(s.Condition),
			"then":      stmtToMap(s.Then),
		}

		if s.Else != nil {
			m["else"] = stmtToMap(s.Else)
		}

		return m

	case *While:
		return map[string]any{
			"node":      "While",
			"condition": exprToMap(s.Condition),
			"body":      stmtToMap(s.Body),
		}

	case *Function:
		params := make([]any, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}

		return map[string]any{
			"node":   "Function",
			"name":   s.Name.Lexeme,
			"line":   s.Name.Line,
			"params": params,
			"body":   ToMap(s.Body),
		}

	case *Return:
		m := map[string]any{
			"node": "Return",
			"line": s.Keyword.Line,
		}

		if s.Value != nil {
			m["value"] = exprToMap(s.Value)
		}

		return m

	default:
		return map[string]any{"node": resultTypeName(s)}
	}
}

func exprToMap(e Expr) any {
	switch e := e.(type) {
	case nil:
		return nil

	case *Literal:
		return map[string]any{
			"node":  "Literal",
			"type":  TypeName(e.Value),
			"value": literalToNative(e.Value),
		}

	case *Variable:
		return map[string]any{
			"node": "Variable",
			"name": e.Name.Lexeme,
			"line": e.Name.Line,
		}

	case *Assign:
		return map[string]any{
			"node":  "Assign",
			"name":  e.Name.Lexeme,
			"line":  e.Name.Line,
			"value": exprToMap(e.Value),
		}

	case *Binary:
		return map[string]any{
			"node":     "Binary",
			"operator": e.Operator.Lexeme,
			"left":     exprToMap(e.Left),
			"right":    exprToMap(e.Right),
		}

	case *Logical:
		return map[string]any{
			"node":     "Logical",
			"operator": e.Operator.Lexeme,
			"left":     exprToMap(e.Left),
			"right":    exprToMap(e.Right),
		}

	case *Unary:
		return map[string]any{
			"node":     "Unary",
			"operator": e.Operator.Lexeme,
			"right":    exprToMap(e.Right),
		}

	case *Grouping:
		return map[string]any{
			"node":       "Grouping",
			"expression": exprToMap(e.Expression),
		}

	case *Call:
		args := make([]any, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = exprToMap(a)
		}

		return map[string]any{
			"node":      "Call",
			"callee":    exprToMap(e.Callee),
			"arguments": args,
			"line":      e.Paren.Line,
		}

	default:
		return map[string]any{"node": resultTypeName(e)}
	}
}

// literalToNative converts a literal value to its native Go type.
// Infinities and NaN are not representable in JSON and are kept as strings.
func literalToNative(v Value) any {
	switch v := v.(type) {
	case Number:
		f := float64(v)
		if s := formatNumber(f); s == "inf" || s == "-inf" || s == "NaN" {
			return s
		}

		return f

	case String:
		return string(v)

	case Boolean:
		return bool(v)

	default:
		return nil
	}
}
