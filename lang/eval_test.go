package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// run compiles and interprets input with a fresh interpreter, returning the
// printed output and the compile and runtime errors.
func run(t *testing.T, input string, opts ...Option) (string, error, error) {
	t.Helper()

	var out bytes.Buffer

	opts = append([]Option{WithOutput(&out), WithCache(false)}, opts...)
	compileErr, runtimeErr := Run(context.Background(), input, opts...)

	return out.String(), compileErr, runtimeErr
}

func TestInterpret_Output(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"equality", "print 1 == 1;", "true\n"},
		{"cross-type equality", `print 1 == "1";`, "false\n"},
		{"inequality", `print nil != false;`, "true\n"},
		{"string plus number", `print "a" + 1;`, "a1\n"},
		{"number plus string", `print 1.5 + "a";`, "1.5a\n"},
		{"string concatenation", `print "foo" + "bar";`, "foobar\n"},
		{"arithmetic", "print 10 / 4; print 3 * 2; print 7 - 10;", "2.5\n6\n-3\n"},
		{"precedence", "print 10 + 10 * 10;", "110\n"},
		{"division by zero", "print 1 / 0; print -1 / 0;", "inf\n-inf\n"},
		{"NaN is not equal to itself", "var n = 0 / 0; print n == n;", "false\n"},
		{"comparison", "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 5;", "true\ntrue\nfalse\nfalse\n"},
		{"negation", "print -(1 + 2); print !nil; print !0; print !\"\";", "-3\ntrue\nfalse\nfalse\n"},
		{"uninitialized variable", "var x; print x;", "nil\n"},
		{"or short circuits to true", "print 1 or undefined;", "true\n"},
		{"or yields right operand", "print nil or 3;", "3\n"},
		{"and short circuits to false", "print nil and undefined;", "false\n"},
		{"and yields right operand", `print 1 and "yes";`, "yes\n"},
		{"truthiness of zero", `if (0) print "yes"; else print "no";`, "yes\n"},
		{"nil is falsy", "if (nil) print 1; else print 2;", "2\n"},
		{"while", "var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2\n"},
		{"for", "for (var i = 0; i < 3; i = i + 1) print i;", "0\n1\n2\n"},
		{"assignment yields value", "var a; var b; a = b = 4; print a + b;", "8\n"},
		{
			"block shadowing",
			"var a = 1; { var a = 2; print a; } print a;",
			"2\n1\n",
		},
		{
			"block assigns outer binding",
			"var a = 1; { a = 2; } print a;",
			"2\n",
		},
		{
			"function value",
			"fun f() {} print f;",
			"<fn f>\n",
		},
		{
			"implicit nil return",
			"fun f() {} print f();",
			"nil\n",
		},
		{
			"bare return",
			"fun f() { return; print 1; } print f();",
			"nil\n",
		},
		{
			"return from inside loop",
			"fun f() { while (true) { return 5; } } print f();",
			"5\n",
		},
		{
			"return from inside for",
			"fun f() { for (var i = 0; ; i = i + 1) { if (i == 3) return i; } } print f();",
			"3\n",
		},
		{
			"recursion",
			"fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(10);",
			"55\n",
		},
		{
			"closure outlives its declaring call",
			`fun makeCounter() {
			   var i = 0;
			   fun count() { i = i + 1; return i; }
			   return count;
			 }
			 var c = makeCounter();
			 print c();
			 print c();`,
			"1\n2\n",
		},
		{
			"closure over parameter",
			"fun adder(n) { fun add(x) { return x + n; } return add; } var add5 = adder(5); print add5(3);",
			"8\n",
		},
		{
			"closures share captured scope",
			`fun pair() {
			   var v = 0;
			   fun set(x) { v = x; }
			   fun get() { return v; }
			   set(7);
			   return get;
			 }
			 print pair()();`,
			"7\n",
		},
		{
			"capture by reference",
			`{ var x = "before"; fun show() { print x; } x = "after"; show(); }`,
			"after\n",
		},
		{
			"static resolution ignores later shadowing",
			`var a = "global";
			 {
			   fun showA() { print a; }
			   showA();
			   var a = "block";
			   showA();
			 }`,
			"global\nglobal\n",
		},
		{
			"arguments evaluate left to right",
			`fun p(x) { print x; return x; } fun f(a, b) {} f(p(1), p(2));`,
			"1\n2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, compileErr, runtimeErr := run(t, tt.input)

			if compileErr != nil {
				t.Fatalf("compile error: %v", compileErr)
			}

			if runtimeErr != nil {
				t.Fatalf("runtime error: %v", runtimeErr)
			}

			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpret_RuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		wantOut string
	}{
		{
			name:    "subtract string",
			input:   `print 1 - "a";`,
			wantErr: "Operands must be two numbers\n[Line 1 ]",
		},
		{
			name:    "add boolean",
			input:   "print true + 1;",
			wantErr: "Operands must be numbers or strings\n[Line 1 ]",
		},
		{
			name:    "compare strings",
			input:   `print "a" < "b";`,
			wantErr: "Operands must be two numbers\n[Line 1 ]",
		},
		{
			name:    "negate string",
			input:   "print 1;\nprint -\"a\";",
			wantErr: "Operand must be a number\n[Line 2 ]",
			wantOut: "1\n",
		},
		{
			name:    "undefined variable",
			input:   "print x;",
			wantErr: "Undefined variable 'x'.\n[Line 1 ]",
		},
		{
			name:    "assign undefined variable",
			input:   "x = 1;",
			wantErr: "Undefined variable 'x'.\n[Line 1 ]",
		},
		{
			name:    "call non-function",
			input:   `"a"();`,
			wantErr: "Can only call functions.\n[Line 1 ]",
		},
		{
			name:    "wrong argument count",
			input:   "fun f(a) {}\nf(1, 2);",
			wantErr: "Expected 1 arguments but got 2.\n[Line 2 ]",
		},
		{
			name:    "failure aborts remaining statements",
			input:   "print 1; print x; print 2;",
			wantErr: "Undefined variable 'x'.\n[Line 1 ]",
			wantOut: "1\n",
		},
		{
			name:    "failure inside function",
			input:   "fun f() { return nil + 1; }\nprint f();",
			wantErr: "Operands must be numbers or strings\n[Line 1 ]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, compileErr, runtimeErr := run(t, tt.input)

			if compileErr != nil {
				t.Fatalf("compile error: %v", compileErr)
			}

			var re *RuntimeError
			if !errors.As(runtimeErr, &re) {
				t.Fatalf("runtime error %v is not a *RuntimeError", runtimeErr)
			}

			if runtimeErr.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", runtimeErr.Error(), tt.wantErr)
			}

			if got != tt.wantOut {
				t.Errorf("output = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestInterpret_StackOverflow(t *testing.T) {
	_, _, runtimeErr := run(t, "fun f() { f(); } f();", WithMaxDepth(64))

	if runtimeErr == nil || runtimeErr.Error() != "Stack overflow.\n[Line 1 ]" {
		t.Fatalf("error = %v, want stack overflow", runtimeErr)
	}

	got, _, runtimeErr := run(t,
		"fun down(n) { if (n == 0) return 0; return down(n - 1); } print down(60);",
		WithMaxDepth(64))
	if runtimeErr != nil {
		t.Fatalf("recursion within the limit failed: %v", runtimeErr)
	}

	if got != "0\n" {
		t.Errorf("output = %q, want 0", got)
	}
}

func TestInterpret_CompileErrors(t *testing.T) {
	t.Run("parse error does not stop later statements", func(t *testing.T) {
		got, compileErr, runtimeErr := run(t, "print ;\nprint 2;")

		if compileErr == nil || !strings.Contains(compileErr.Error(), "Expect expression.") {
			t.Errorf("compile error = %v", compileErr)
		}

		if runtimeErr != nil {
			t.Errorf("runtime error = %v", runtimeErr)
		}

		if got != "2\n" {
			t.Errorf("output = %q, want %q", got, "2\n")
		}
	})

	t.Run("rejected declarations never execute", func(t *testing.T) {
		args := strings.TrimSuffix(strings.Repeat("1, ", 256), ", ")

		tests := []struct {
			name    string
			input   string
			wantErr string
		}{
			{
				name:    "invalid assignment target",
				input:   `fun f() { print "side effect"; return 1; } f() = 2; print "after";`,
				wantErr: "Invalid assignment target.",
			},
			{
				name:    "too many arguments",
				input:   `fun g() { print "called"; } g(` + args + `); print "after";`,
				wantErr: "Can't have more than 255 arguments.",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, compileErr, runtimeErr := run(t, tt.input)

				if compileErr == nil || !strings.Contains(compileErr.Error(), tt.wantErr) {
					t.Errorf("compile error = %v, want %q", compileErr, tt.wantErr)
				}

				if runtimeErr != nil {
					t.Errorf("runtime error = %v", runtimeErr)
				}

				if got != "after\n" {
					t.Errorf("output = %q, want %q", got, "after\n")
				}
			})
		}
	})

	t.Run("resolve error prevents execution", func(t *testing.T) {
		got, compileErr, runtimeErr := run(t, "print 1; return 2;")

		want := "[line 1] Error at 'return': Can't return from top-level code."
		if compileErr == nil || compileErr.Error() != want {
			t.Errorf("compile error = %v, want %q", compileErr, want)
		}

		if runtimeErr != nil {
			t.Errorf("runtime error = %v", runtimeErr)
		}

		if got != "" {
			t.Errorf("output = %q, want none", got)
		}
	})

	t.Run("interpret refuses unrunnable program", func(t *testing.T) {
		prog, _ := Compile(context.Background(), "return;", WithCache(false))

		err := NewInterpreter().Interpret(context.Background(), prog)
		if !errors.Is(err, ErrCompile) {
			t.Errorf("error = %v, want ErrCompile", err)
		}
	})
}

func TestInterpreter_Session(t *testing.T) {
	var out bytes.Buffer

	ctx := context.Background()
	in := NewInterpreter(WithOutput(&out))
	in.Define("answer", Number(42))

	lines := []string{
		"var a = 1;",
		"fun get() { return a; }",
		"a = a + answer;",
		"print get();",
		"{ var b = 2; fun inner() { return b; } print inner(); }",
		"print undefined;",
		"print a;",
	}

	var failures int

	for _, line := range lines {
		prog, err := Compile(ctx, line, WithCache(false))
		if err != nil {
			t.Fatalf("compile %q: %v", line, err)
		}

		if err := in.Interpret(ctx, prog); err != nil {
			failures++
		}
	}

	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}

	if want := "43\n2\n43\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	if names := in.Globals().Names(); len(names) != 3 {
		t.Errorf("globals = %v, want [a answer get]", names)
	}
}

func TestInterpreter_SessionLocals(t *testing.T) {
	var out bytes.Buffer

	ctx := context.Background()
	in := NewInterpreter(WithOutput(&out))

	lines := []string{
		"fun counter() { var n = 0; fun inc() { n = n + 1; return n; } return inc; }",
		"var c = counter();",
		"{ var n = 10; print n; }",
		"print c();",
		"print c();",
	}

	for _, line := range lines {
		prog, err := Compile(ctx, line, WithCache(false))
		if err != nil {
			t.Fatalf("compile %q: %v", line, err)
		}

		if err := in.Interpret(ctx, prog); err != nil {
			t.Fatalf("interpret %q: %v", line, err)
		}

		if len(in.locals) != len(prog.Locals) {
			t.Errorf("after %q: interpreter holds %d locals, want %d",
				line, len(in.locals), len(prog.Locals))
		}
	}

	if want := "10\n1\n2\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestInterpreter_Independent(t *testing.T) {
	var out1, out2 bytes.Buffer

	ctx := context.Background()
	prog, _ := Compile(ctx, "var x = 1;")

	first := NewInterpreter(WithOutput(&out1))
	if err := first.Interpret(ctx, prog); err != nil {
		t.Fatal(err)
	}

	check, _ := Compile(ctx, "print x;")

	second := NewInterpreter(WithOutput(&out2))
	if err := second.Interpret(ctx, check); err == nil {
		t.Error("second interpreter saw the first one's globals")
	}

	if err := first.Interpret(ctx, check); err != nil {
		t.Errorf("first interpreter lost its globals: %v", err)
	}

	if out1.String() != "1\n" {
		t.Errorf("output = %q", out1.String())
	}
}
