package lang

// Closure is a user-defined function together with the scope that was
// current when its declaration executed and the resolution of the program
// that declared it.
type Closure struct {
	decl    *Function
	closure *Environment
	locals  Locals
}

func (*Closure) value() {}

// NewClosure binds decl to the scope it captures.
func NewClosure(decl *Function, closure *Environment) *Closure {
	return &Closure{decl: decl, closure: closure}
}

// Name returns the declared name of the function.
func (c *Closure) Name() string { return c.decl.Name.Lexeme }

// Arity returns the number of declared parameters.
func (c *Closure) Arity() int { return len(c.decl.Params) }

// Params returns the declared parameter names in order.
func (c *Closure) Params() []string {
	names := make([]string, len(c.decl.Params))
	for i, p := range c.decl.Params {
		names[i] = p.Lexeme
	}

	return names
}

// Call runs the body in a fresh scope nested in the captured one, with each
// parameter bound to the matching argument. A body that finishes without a
// return statement yields nil.
func (c *Closure) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(c.closure)

	// The body was resolved with the program that declared it.
	saved := in.locals
	in.locals = c.locals

	defer func() { in.locals = saved }()

	for i, param := range c.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	ctl, err := in.executeBlock(c.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if ctl != nil {
		return ctl.value, nil
	}

	return Nil{}, nil
}

// String returns the printed form of the function.
func (c *Closure) String() string {
	return "<fn " + c.decl.Name.Lexeme + ">"
}
