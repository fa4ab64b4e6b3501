package lang

// Expr is an expression node. Each node owns its children exclusively.
//
// Nodes are always handled by pointer so that a node's identity can key the
// resolver's side table ([Locals]).
type Expr interface {
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	stmt()
}

type (
	// Literal is a constant value.
	Literal struct {
		Value Value
	}

	// Variable reads the binding of Name.
	Variable struct {
		Name Token
	}

	// Assign stores the result of Value into the binding of Name.
	Assign struct {
		Name  Token
		Value Expr
	}

	// Binary is an arithmetic, comparison or equality operation.
	Binary struct {
		Left     Expr
		Operator Token
		Right    Expr
	}

	// Logical is a short-circuiting `and` or `or`.
	Logical struct {
		Left     Expr
		Operator Token
		Right    Expr
	}

	// Unary is a prefix `!` or `-`.
	Unary struct {
		Operator Token
		Right    Expr
	}

	// Grouping is a parenthesized expression.
	Grouping struct {
		Expression Expr
	}

	// Call invokes Callee with Arguments. Paren is the closing parenthesis,
	// kept for diagnostics.
	Call struct {
		Callee    Expr
		Paren     Token
		Arguments []Expr
	}
)

func (*Literal) expr()  {}
func (*Variable) expr() {}
func (*Assign) expr()   {}
func (*Binary) expr()   {}
func (*Logical) expr()  {}
func (*Unary) expr()    {}
func (*Grouping) expr() {}
func (*Call) expr()     {}

type (
	// Expression evaluates Expression and discards the result.
	Expression struct {
		Expression Expr
	}

	// Print writes the string form of Expression followed by a newline.
	Print struct {
		Expression Expr
	}

	// Var declares Name in the current scope. Initializer may be nil.
	Var struct {
		Name        Token
		Initializer Expr
	}

	// Block runs Statements in a new scope.
	Block struct {
		Statements []Stmt
	}

	// If runs Then when Condition is truthy, else Else (which may be nil).
	If struct {
		Condition Expr
		Then      Stmt
		Else      Stmt
	}

	// While runs Body for as long as Condition is truthy.
	While struct {
		Condition Expr
		Body      Stmt
	}

	// Function declares a named function.
	Function struct {
		Name   Token
		Params []Token
		Body   []Stmt
	}

	// Return leaves the innermost function call. Value may be nil.
	Return struct {
		Keyword Token
		Value   Expr
	}
)

func (*Expression) stmt() {}
func (*Print) stmt()      {}
func (*Var) stmt()        {}
func (*Block) stmt()      {}
func (*If) stmt()         {}
func (*While) stmt()      {}
func (*Function) stmt()   {}
func (*Return) stmt()     {}
