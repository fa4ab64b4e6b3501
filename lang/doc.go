// Package lang implements a small dynamically typed scripting language with
// lexical scoping and first-class closures.
//
// # Pipeline
//
// Source text passes through four stages:
//
//   - [Scan] converts text into [Token] values
//   - [Parse] builds [Stmt] and [Expr] trees by recursive descent
//   - [Resolve] computes the scope distance of every local reference
//   - [Interpreter] walks the trees and produces side effects
//
// [Compile] runs the first three stages and returns a [Program]. Each stage
// reports every problem it finds instead of stopping at the first one; a
// statement that fails to parse is dropped and the rest still run.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	program     → declaration* EOF
//	declaration → funDecl | varDecl | statement
//	funDecl     → "fun" IDENTIFIER "(" parameters? ")" block
//	varDecl     → "var" IDENTIFIER ( "=" expression )? ";"
//	statement   → exprStmt | forStmt | ifStmt | printStmt
//	            | returnStmt | whileStmt | block
//	expression  → assignment
//	assignment  → IDENTIFIER "=" assignment | logic_or
//	logic_or    → logic_and ( "or" logic_and )*
//	logic_and   → equality ( "and" equality )*
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | call
//	call        → primary ( "(" arguments? ")" )*
//	primary     → NUMBER | STRING | "true" | "false" | "nil"
//	            | IDENTIFIER | "(" expression ")"
//
// A for loop is parsed into an equivalent while loop.
//
// # Example
//
//	fun counter() {
//	  var n = 0;
//	  fun next() {
//	    n = n + 1;
//	    return n;
//	  }
//	  return next;
//	}
//
//	var c = counter();
//	print c(); // 1
//	print c(); // 2
//
// # Values
//
// Numbers are 64-bit floats. The + operator adds numbers, and concatenates
// when either operand is a string. Every value is truthy except false and
// nil. The and/or operators yield a boolean when they short-circuit and the
// right operand's value otherwise.
package lang
