package lang

import (
	"errors"
	"slices"
	"testing"
)

func ident(name string) Token {
	return Token{Kind: KindIdentifier, Lexeme: name, Line: 1}
}

func TestEnvironment_GetDefine(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", Number(1))
	global.Define("n", nil)

	local := NewEnvironment(global)
	local.Define("b", String("x"))

	tests := []struct {
		name string
		env  *Environment
		key  string
		want Value
	}{
		{"own binding", local, "b", String("x")},
		{"enclosing binding", local, "a", Number(1)},
		{"nil defined as Nil", global, "n", Nil{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.env.Get(ident(tt.key))
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.key, err)
			}

			if got != tt.want {
				t.Errorf("Get(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	t.Run("undefined", func(t *testing.T) {
		_, err := local.Get(ident("missing"))

		var re *RuntimeError
		if !errors.As(err, &re) {
			t.Fatalf("error %v is not a *RuntimeError", err)
		}

		if want := "Undefined variable 'missing'.\n[Line 1 ]"; err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("redefine replaces", func(t *testing.T) {
		global.Define("a", Number(5))

		if got, _ := global.Get(ident("a")); got != Value(Number(5)) {
			t.Errorf("a = %v, want 5", got)
		}
	})
}

func TestEnvironment_Assign(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", Number(1))

	left := NewEnvironment(global)
	right := NewEnvironment(global)

	if err := left.Assign(ident("a"), Number(2)); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if got, _ := right.Get(ident("a")); got != Value(Number(2)) {
		t.Errorf("sibling sees a = %v, want 2", got)
	}

	if err := left.Assign(ident("nope"), Number(1)); err == nil {
		t.Error("Assign to undefined name succeeded")
	}

	if _, err := global.Get(ident("nope")); err == nil {
		t.Error("failed Assign created a binding")
	}
}

func TestEnvironment_At(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", String("global"))

	mid := NewEnvironment(global)
	mid.Define("x", String("mid"))

	inner := NewEnvironment(mid)

	if inner.Ancestor(0) != inner || inner.Ancestor(1) != mid || inner.Ancestor(2) != global {
		t.Fatal("Ancestor chain is wrong")
	}

	if inner.Ancestor(3) != nil {
		t.Error("Ancestor past the root is not nil")
	}

	if got, _ := inner.GetAt(2, ident("x")); got != Value(String("global")) {
		t.Errorf("GetAt(2) = %v, want global", got)
	}

	if got, _ := inner.GetAt(1, ident("x")); got != Value(String("mid")) {
		t.Errorf("GetAt(1) = %v, want mid", got)
	}

	if _, err := inner.GetAt(0, ident("x")); err == nil {
		t.Error("GetAt(0) found a binding that is not in the scope")
	}

	if err := inner.AssignAt(2, ident("x"), String("changed")); err != nil {
		t.Fatalf("AssignAt: %v", err)
	}

	if got, _ := global.Get(ident("x")); got != Value(String("changed")) {
		t.Errorf("global x = %v, want changed", got)
	}

	if got, _ := mid.Get(ident("x")); got != Value(String("mid")) {
		t.Errorf("mid x = %v, want mid", got)
	}

	if err := inner.AssignAt(5, ident("x"), Nil{}); err == nil {
		t.Error("AssignAt past the root succeeded")
	}

	if err := inner.AssignAt(0, ident("x"), Nil{}); err == nil {
		t.Error("AssignAt created a binding")
	}
}

func TestEnvironment_Names(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", Nil{})
	env.Define("a", Nil{})

	if got := env.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}

	if NewEnvironment(env).Enclosing() != env {
		t.Error("Enclosing() is not the parent")
	}
}

func TestEnvironment_Lookup(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", Number(1))
	inner := NewEnvironment(outer)

	if v, ok := inner.Lookup("x"); !ok || v != Number(1) {
		t.Errorf("Lookup(x) = %v, %v", v, ok)
	}

	if _, ok := inner.Lookup("y"); ok {
		t.Error("Lookup(y) found an unbound name")
	}
}

func TestClosure_Params(t *testing.T) {
	b := NewBuilder()
	decl := b.Fun("add", []string{"a", "b"}).(*Function)
	fn := NewClosure(decl, NewEnvironment(nil))

	if got := fn.Params(); !slices.Equal(got, []string{"a", "b"}) || fn.Arity() != 2 {
		t.Errorf("Params() = %v, Arity() = %d", got, fn.Arity())
	}

	if fn.Name() != "add" || fn.String() != "<fn add>" {
		t.Errorf("Name() = %q, String() = %q", fn.Name(), fn.String())
	}
}
