package lang

// Environment is one lexical scope: a table of bindings plus a link to the
// enclosing scope. Environments are shared by reference; a closure and the
// block that created it observe the same bindings.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment returns an empty scope nested in enclosing, which is nil
// for the global scope.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing returns the parent scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment { return e.enclosing }

// Define binds name in this scope, replacing any existing binding.
func (e *Environment) Define(name string, value Value) {
	if value == nil {
		value = Nil{}
	}

	e.values[name] = value
}

// Get looks name up in this scope and then in each enclosing scope.
func (e *Environment) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}

	return nil, undefined(name)
}

// Lookup is like Get but takes a bare name and reports whether it was found.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Assign rebinds the nearest existing binding of name. It never creates a
// binding.
func (e *Environment) Assign(name Token, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value

			return nil
		}
	}

	return undefined(name)
}

// Ancestor returns the scope distance links up the chain, or nil if the
// chain is shorter than that.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.enclosing
	}

	return env
}

// GetAt reads name exactly distance scopes up, without searching further.
func (e *Environment) GetAt(distance int, name Token) (Value, error) {
	if env := e.Ancestor(distance); env != nil {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}

	return nil, undefined(name)
}

// AssignAt rebinds name exactly distance scopes up.
func (e *Environment) AssignAt(distance int, name Token, value Value) error {
	env := e.Ancestor(distance)
	if env == nil {
		return undefined(name)
	}

	if _, ok := env.values[name.Lexeme]; !ok {
		return undefined(name)
	}

	env.values[name.Lexeme] = value

	return nil
}

// Names returns the names bound directly in this scope, sorted.
func (e *Environment) Names() []string {
	return sortedKeys(e.values)
}

func undefined(name Token) *RuntimeError {
	return newRuntimeError(&name, "Undefined variable '"+name.Lexeme+"'.")
}
