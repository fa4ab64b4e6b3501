package lang

// Builder provides a programmatic API for constructing syntax trees without
// parsing source text. This is useful for tests and for generating programs.
//
// Tokens created by a Builder carry line 1.
//
// Example:
//
//	b := lang.NewBuilder()
//	stmts := b.Stmts(
//	    b.Print(b.Binary(b.Number(1), "+", b.Number(2))),
//	)
type Builder struct{}

// NewBuilder creates a new tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Stmts collects statements into a slice.
func (b *Builder) Stmts(stmts ...Stmt) []Stmt { return stmts }

// Number creates a number literal.
func (b *Builder) Number(f float64) Expr { return &Literal{Value: Number(f)} }

// String creates a string literal.
func (b *Builder) String(s string) Expr { return &Literal{Value: String(s)} }

// Bool creates a boolean literal.
func (b *Builder) Bool(v bool) Expr { return &Literal{Value: Boolean(v)} }

// Nil creates a nil literal.
func (b *Builder) Nil() Expr { return &Literal{Value: Nil{}} }

// Ident creates a variable reference.
func (b *Builder) Ident(name string) Expr {
	return &Variable{Name: b.token(KindIdentifier, name)}
}

// Assign creates an assignment to name.
func (b *Builder) Assign(name string, value Expr) Expr {
	return &Assign{Name: b.token(KindIdentifier, name), Value: value}
}

// Binary creates a binary operation. op is the operator's lexeme.
func (b *Builder) Binary(left Expr, op string, right Expr) Expr {
	return &Binary{Left: left, Operator: b.operator(op), Right: right}
}

// Logical creates an `and` or `or` operation.
func (b *Builder) Logical(left Expr, op string, right Expr) Expr {
	return &Logical{Left: left, Operator: b.operator(op), Right: right}
}

// Unary creates a prefix operation.
func (b *Builder) Unary(op string, right Expr) Expr {
	return &Unary{Operator: b.operator(op), Right: right}
}

// Group wraps e in parentheses.
func (b *Builder) Group(e Expr) Expr { return &Grouping{Expression: e} }

// Call creates a call of callee.
func (b *Builder) Call(callee Expr, args ...Expr) Expr {
	return &Call{Callee: callee, Paren: b.token(KindRightParen, ")"), Arguments: args}
}

// Expr creates an expression statement.
func (b *Builder) Expr(e Expr) Stmt { return &Expression{Expression: e} }

// Print creates a print statement.
func (b *Builder) Print(e Expr) Stmt { return &Print{Expression: e} }

// Var creates a variable declaration. init may be nil.
func (b *Builder) Var(name string, init Expr) Stmt {
	return &Var{Name: b.token(KindIdentifier, name), Initializer: init}
}

// Block creates a block.
func (b *Builder) Block(stmts ...Stmt) Stmt { return &Block{Statements: stmts} }

// If creates a conditional. els may be nil.
func (b *Builder) If(cond Expr, then, els Stmt) Stmt {
	return &If{Condition: cond, Then: then, Else: els}
}

// While creates a loop.
func (b *Builder) While(cond Expr, body Stmt) Stmt {
	return &While{Condition: cond, Body: body}
}

// Fun creates a function declaration.
func (b *Builder) Fun(name string, params []string, body ...Stmt) Stmt {
	toks := make([]Token, len(params))
	for i, p := range params {
		toks[i] = b.token(KindIdentifier, p)
	}

	return &Function{Name: b.token(KindIdentifier, name), Params: toks, Body: body}
}

// Return creates a return statement. value may be nil.
func (b *Builder) Return(value Expr) Stmt {
	return &Return{Keyword: b.token(KindReturn, "return"), Value: value}
}

func (b *Builder) token(kind Kind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: 1}
}

// operator maps an operator lexeme to its token. Unknown lexemes become
// identifiers so the mistake shows up in the printed tree.
func (b *Builder) operator(op string) Token {
	kind, ok := operators[op]
	if !ok {
		kind = KindIdentifier
	}

	return b.token(kind, op)
}

var operators = map[string]Kind{
	"-":   KindMinus,
	"+":   KindPlus,
	"/":   KindSlash,
	"*":   KindStar,
	"!":   KindBang,
	"!=":  KindBangEqual,
	"==":  KindEqualEqual,
	">":   KindGreater,
	">=":  KindGreaterEqual,
	"<":   KindLess,
	"<=":  KindLessEqual,
	"and": KindAnd,
	"or":  KindOr,
}
