package lang

// Locals maps each local variable reference (a [*Variable] or [*Assign]
// node) to the number of scopes between the reference and its binding.
// References absent from the map are global.
type Locals map[Expr]int

// Resolve performs the static scope analysis of stmts.
//
// It fails on reading a local in its own initializer and on a return
// outside any function. Every error is collected; resolution continues past
// each one.
func Resolve(stmts []Stmt) (Locals, []error) {
	r := &resolver{locals: make(Locals)}
	r.resolveStmts(stmts)

	return r.locals, r.errs
}

type functionKind int

const (
	functionNone functionKind = iota
	functionBody
)

// resolver walks a program with a stack of block scopes. Each scope maps a
// name to whether its initializer has finished.
type resolver struct {
	scopes  []map[string]bool
	current functionKind
	locals  Locals
	errs    []error
}

func (r *resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(s Stmt) {
	switch s := s.(type) {
	case *Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *Var:
		r.declare(s.Name)

		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}

		r.define(s.Name)

	case *Function:
		// Defined before the body so the function can refer to itself.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionBody)

	case *Expression:
		r.resolveExpr(s.Expression)

	case *Print:
		r.resolveExpr(s.Expression)

	case *If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)

		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *Return:
		if r.current == functionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}

		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	}
}

func (r *resolver) resolveFunction(fn *Function, kind functionKind) {
	enclosing := r.current
	r.current = kind

	r.beginScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}

	r.resolveStmts(fn.Body)
	r.endScope()

	r.current = enclosing
}

func (r *resolver) resolveExpr(e Expr) {
	switch e := e.(type) {
	case *Variable:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}

		r.resolveLocal(e, e.Name)

	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *Unary:
		r.resolveExpr(e.Right)

	case *Grouping:
		r.resolveExpr(e.Expression)

	case *Call:
		r.resolveExpr(e.Callee)

		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *Literal:
	}
}

// resolveLocal records the depth of the innermost scope declaring name.
// Nothing is recorded when no scope declares it.
func (r *resolver) resolveLocal(e Expr, name Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i

			return
		}
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}

	r.scopes[len(r.scopes)-1][name.Lexeme] = false
}

func (r *resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}

	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *resolver) error(tok Token, msg string) {
	r.errs = append(r.errs, &SyntaxError{Token: tok, Message: msg})
}
