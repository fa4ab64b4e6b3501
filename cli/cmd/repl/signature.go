package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/ardnew/lox/lang"
)

// functionCall describes the call whose argument list contains the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call before cursor and
// counts the top-level commas before the cursor to locate the argument.
func detectFunctionCall(input string, cursor int) functionCall {
	if cursor > len(input) {
		cursor = len(input)
	}

	depth := 0
	open := -1

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	start := open

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if r != '_' && !isAlphaNumeric(r) {
			break
		}

		start -= size
	}

	name := input[start:open]
	if name == "" || !isAlpha(rune(name[0])) {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

func isAlpha(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || (r >= '0' && r <= '9')
}

// signatureOf returns "name(a, b)" and the parameter names for a global
// bound to a user function. The signature is empty for anything else.
func signatureOf(v lang.Value, ok bool) (signature string, params []string) {
	fn, isClosure := v.(*lang.Closure)
	if !ok || !isClosure {
		return "", nil
	}

	params = fn.Params()

	return fn.Name() + "(" + strings.Join(params, ", ") + ")", params
}

// renderSignatureHint renders name(params...) with the parameter at
// argIndex highlighted. An argument index past the last parameter is shown
// as an arity error.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if argIndex > 0 && argIndex >= len(params) {
		b.WriteString(" ")
		b.WriteString(errorStyle.Render("too many arguments"))
	}

	return b.String()
}
