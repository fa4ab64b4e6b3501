package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
)

// Interpreter executes resolved programs against a global scope that
// persists across calls to [Interpreter.Interpret].
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  Locals
	opts    options
	depth   int
	ctx     context.Context //nolint:containedctx // scoped to one Interpret
}

// NewInterpreter returns an interpreter with an empty global scope.
func NewInterpreter(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)

	return &Interpreter{
		globals: globals,
		env:     globals,
		opts:    makeOptions(opts...),
		ctx:     context.Background(),
	}
}

// Globals returns the global scope.
func (in *Interpreter) Globals() *Environment { return in.globals }

// Define binds name in the global scope.
func (in *Interpreter) Define(name string, value Value) {
	in.globals.Define(name, value)
}

// Interpret executes each statement of prog in order and stops at the first
// runtime failure, which is returned as a [*RuntimeError].
//
// A program whose resolution failed is never executed.
func (in *Interpreter) Interpret(ctx context.Context, prog *Program) error {
	if !prog.Runnable() {
		return ErrCompile.With(slog.Int("errors", len(prog.Errors)))
	}

	in.ctx = ctx
	in.env = in.globals
	in.depth = 0
	in.locals = prog.Locals

	defer func() { in.ctx = context.Background() }()

	in.opts.logger.TraceContext(ctx, "interpret start",
		slog.Int("statements", len(prog.Statements)))

	for _, s := range prog.Statements {
		if _, err := in.execute(s); err != nil {
			in.opts.logger.TraceContext(ctx, "interpret failed",
				slog.Any("error", err))

			return err
		}
	}

	in.opts.logger.TraceContext(ctx, "interpret finish")

	return nil
}

// control is the outcome of a statement that unwinds to the nearest call
// boundary. A nil control means execution continues normally.
type control struct {
	value Value
}

func (in *Interpreter) execute(s Stmt) (*control, error) {
	switch s := s.(type) {
	case *Expression:
		_, err := in.evaluate(s.Expression)

		return nil, err

	case *Print:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return nil, err
		}

		if _, err := io.WriteString(in.opts.output, Stringify(v)+"\n"); err != nil {
			return nil, newRuntimeError(nil, err.Error())
		}

		return nil, nil

	case *Var:
		var v Value = Nil{}

		if s.Initializer != nil {
			var err error
			if v, err = in.evaluate(s.Initializer); err != nil {
				return nil, err
			}
		}

		in.env.Define(s.Name.Lexeme, v)

		return nil, nil

	case *Block:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))

	case *If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return nil, err
		}

		switch {
		case IsTruthy(cond):
			return in.execute(s.Then)
		case s.Else != nil:
			return in.execute(s.Else)
		}

		return nil, nil

	case *While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return nil, err
			}

			if !IsTruthy(cond) {
				return nil, nil
			}

			if ctl, err := in.execute(s.Body); ctl != nil || err != nil {
				return ctl, err
			}
		}

	case *Function:
		fn := NewClosure(s, in.env)
		fn.locals = in.locals
		in.env.Define(s.Name.Lexeme, fn)

		return nil, nil

	case *Return:
		var v Value = Nil{}

		if s.Value != nil {
			var err error
			if v, err = in.evaluate(s.Value); err != nil {
				return nil, err
			}
		}

		return &control{value: v}, nil

	default:
		return nil, newRuntimeError(nil, "unknown statement "+resultTypeName(s))
	}
}

// executeBlock runs stmts in env and restores the current scope on every
// exit path.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) (*control, error) {
	prev := in.env
	in.env = env

	defer func() { in.env = prev }()

	for _, s := range stmts {
		if ctl, err := in.execute(s); ctl != nil || err != nil {
			return ctl, err
		}
	}

	return nil, nil
}

func (in *Interpreter) evaluate(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		if e.Value == nil {
			return Nil{}, nil
		}

		return e.Value, nil

	case *Grouping:
		return in.evaluate(e.Expression)

	case *Variable:
		return in.lookUp(e.Name, e)

	case *Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}

		if distance, ok := in.locals[e]; ok {
			err = in.env.AssignAt(distance, e.Name, v)
		} else {
			err = in.globals.Assign(e.Name, v)
		}

		if err != nil {
			return nil, err
		}

		return v, nil

	case *Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}

		if e.Operator.Kind == KindOr {
			if IsTruthy(left) {
				return Boolean(true), nil
			}
		} else if !IsTruthy(left) {
			return Boolean(false), nil
		}

		return in.evaluate(e.Right)

	case *Unary:
		right, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}

		switch e.Operator.Kind {
		case KindBang:
			return Boolean(!IsTruthy(right)), nil

		case KindMinus:
			n, ok := right.(Number)
			if !ok {
				return nil, newRuntimeError(&e.Operator, "Operand must be a number")
			}

			return -n, nil
		}

		return nil, newRuntimeError(&e.Operator, "Unknown operator")

	case *Binary:
		return in.binary(e)

	case *Call:
		return in.call(e)

	default:
		return nil, newRuntimeError(nil, "unknown expression "+resultTypeName(e))
	}
}

func (in *Interpreter) lookUp(name Token, e Expr) (Value, error) {
	if distance, ok := in.locals[e]; ok {
		return in.env.GetAt(distance, name)
	}

	return in.globals.Get(name)
}

func (in *Interpreter) binary(e *Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator

	switch op.Kind {
	case KindEqualEqual:
		return Boolean(Equal(left, right)), nil

	case KindBangEqual:
		return Boolean(!Equal(left, right)), nil

	case KindPlus:
		return add(op, left, right)
	}

	l, lok := left.(Number)
	r, rok := right.(Number)

	if !lok || !rok {
		return nil, newRuntimeError(&op, "Operands must be two numbers")
	}

	switch op.Kind {
	case KindMinus:
		return l - r, nil
	case KindStar:
		return l * r, nil
	case KindSlash:
		return l / r, nil
	case KindGreater:
		return Boolean(l > r), nil
	case KindGreaterEqual:
		return Boolean(l >= r), nil
	case KindLess:
		return Boolean(l < r), nil
	case KindLessEqual:
		return Boolean(l <= r), nil
	}

	return nil, newRuntimeError(&op, "Unknown operator")
}

// add sums two numbers or concatenates when either operand is a string.
func add(op Token, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Number:
		switch r := right.(type) {
		case Number:
			return l + r, nil
		case String:
			return String(Stringify(l)) + r, nil
		}

	case String:
		switch right.(type) {
		case String, Number:
			return l + String(Stringify(right)), nil
		}
	}

	return nil, newRuntimeError(&op, "Operands must be numbers or strings")
}

func (in *Interpreter) call(e *Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Arguments))

	for _, a := range e.Arguments {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(&e.Paren, "Can only call functions.")
	}

	if fn.Arity() != len(args) {
		return nil, newRuntimeError(&e.Paren,
			"Expected "+strconv.Itoa(fn.Arity())+
				" arguments but got "+strconv.Itoa(len(args))+".")
	}

	if in.depth >= in.opts.maxDepth {
		return nil, newRuntimeError(&e.Paren, "Stack overflow.")
	}

	in.depth++
	defer func() { in.depth-- }()

	in.opts.logger.TraceContext(in.ctx, "call",
		slog.String("callee", Stringify(fn)),
		slog.Int("args", len(args)),
		slog.Int("depth", in.depth))

	return fn.Call(in, args)
}
