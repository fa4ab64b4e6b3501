package lang

import "errors"

// MaxArgs is the maximum number of parameters or call arguments.
const MaxArgs = 255

// Parse builds statement trees from tokens by recursive descent.
//
// Parse never fails as a whole. A declaration that cannot be parsed is
// reported in the returned errors and skipped by synchronizing to the next
// statement boundary, so later declarations are still parsed.
func Parse(tokens []Token) ([]Stmt, []error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != KindEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		tokens = append(tokens[:len(tokens):len(tokens)],
			Token{Kind: KindEOF, Line: line})
	}

	p := &parser{tokens: tokens}

	var stmts []Stmt

	for !p.eof() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	return stmts, p.errs
}

// parser holds the parser state.
type parser struct {
	tokens  []Token
	current int
	errs    []error
}

// errSync unwinds a failed declaration back to [parser.declaration].
var errSync = errors.New("synchronize")

// declaration → funDecl | varDecl | statement.
func (p *parser) declaration() Stmt {
	var (
		s   Stmt
		err error
	)

	switch {
	case p.match(KindFun):
		s, err = p.function("function")
	case p.match(KindVar):
		s, err = p.varDeclaration()
	default:
		s, err = p.statement()
	}

	if err != nil {
		p.synchronize()

		return nil
	}

	return s
}

// statement → for | if | print | return | while | block | exprStmt.
func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(KindFor):
		return p.forStatement()
	case p.match(KindIf):
		return p.ifStatement()
	case p.match(KindPrint):
		return p.printStatement()
	case p.match(KindReturn):
		return p.returnStatement()
	case p.match(KindWhile):
		return p.whileStatement()
	case p.match(KindLeftBrace):
		body, err := p.block()
		if err != nil {
			return nil, err
		}

		return &Block{Statements: body}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars into an optional initializer and a while loop whose
// body has the increment appended.
func (p *parser) forStatement() (Stmt, error) {
	if _, err := p.consume(KindLeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		init Stmt
		err  error
	)

	switch {
	case p.match(KindSemicolon):
	case p.match(KindVar):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}

	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(KindSemicolon) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(KindRightParen) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &Block{Statements: []Stmt{body, &Expression{Expression: incr}}}
	}

	if cond == nil {
		cond = &Literal{Value: Boolean(true)}
	}

	body = &While{Condition: cond, Body: body}

	if init != nil {
		body = &Block{Statements: []Stmt{init, body}}
	}

	return body, nil
}

func (p *parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(KindLeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindRightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var els Stmt
	if p.match(KindElse) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return &If{Condition: cond, Then: then, Else: els}, nil
}

func (p *parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return &Print{Expression: value}, nil
}

func (p *parser) returnStatement() (Stmt, error) {
	keyword := p.previous()

	var (
		value Expr
		err   error
	)

	if !p.check(KindSemicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}

	return &Return{Keyword: keyword, Value: value}, nil
}

func (p *parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(KindLeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &While{Condition: cond, Body: body}, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &Expression{Expression: expr}, nil
}

// block parses declarations up to the closing brace. Errors inside nested
// declarations are recovered locally, like top-level ones.
func (p *parser) block() ([]Stmt, error) {
	var stmts []Stmt

	for !p.check(KindRightBrace) && !p.eof() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	if _, err := p.consume(KindRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return stmts, nil
}

// function parses a named function declaration of the given kind.
func (p *parser) function(kind string) (Stmt, error) {
	name, err := p.consume(KindIdentifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(KindLeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []Token

	if !p.check(KindRightParen) {
		for {
			if len(params) >= MaxArgs {
				return nil, p.error(p.peek(), "Can't have more than 255 parameters.")
			}

			param, err := p.consume(KindIdentifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}

			params = append(params, param)

			if !p.match(KindComma) {
				break
			}
		}
	}

	if _, err := p.consume(KindRightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(KindLeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &Function{Name: name, Params: params, Body: body}, nil
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(KindIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(KindEqual) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(KindSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &Var{Name: name, Initializer: init}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment → IDENTIFIER "=" assignment | logic_or.
func (p *parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if !p.match(KindEqual) {
		return expr, nil
	}

	equals := p.previous()

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	if v, ok := expr.(*Variable); ok {
		return &Assign{Name: v.Name, Value: value}, nil
	}

	return nil, p.error(equals, "Invalid assignment target.")
}

func (p *parser) or() (Expr, error) {
	return p.logical(p.and, KindOr)
}

func (p *parser) and() (Expr, error) {
	return p.logical(p.equality, KindAnd)
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, KindBangEqual, KindEqualEqual)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term,
		KindGreater, KindGreaterEqual, KindLess, KindLessEqual)
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, KindMinus, KindPlus)
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, KindSlash, KindStar)
}

// binary parses a left-associative chain of operand separated by any of
// the given operators.
func (p *parser) binary(operand func() (Expr, error), ops ...Kind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = &Binary{Left: expr, Operator: op, Right: right}
	}

	return expr, nil
}

// logical is [parser.binary] for the short-circuiting operators.
func (p *parser) logical(operand func() (Expr, error), op Kind) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(op) {
		tok := p.previous()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = &Logical{Left: expr, Operator: tok, Right: right}
	}

	return expr, nil
}

// unary → ( "!" | "-" ) unary | call.
func (p *parser) unary() (Expr, error) {
	if p.match(KindBang, KindMinus) {
		op := p.previous()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &Unary{Operator: op, Right: right}, nil
	}

	return p.call()
}

// call → primary ( "(" arguments? ")" )*.
func (p *parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(KindLeftParen) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr

	if !p.check(KindRightParen) {
		for {
			if len(args) >= MaxArgs {
				return nil, p.error(p.peek(), "Can't have more than 255 arguments.")
			}

			arg, err := p.expression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if !p.match(KindComma) {
				break
			}
		}
	}

	paren, err := p.consume(KindRightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return &Call{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.match(KindFalse):
		return &Literal{Value: Boolean(false)}, nil
	case p.match(KindTrue):
		return &Literal{Value: Boolean(true)}, nil
	case p.match(KindNil):
		return &Literal{Value: Nil{}}, nil
	case p.match(KindNumber, KindString):
		return &Literal{Value: p.previous().Literal}, nil
	case p.match(KindIdentifier):
		return &Variable{Name: p.previous()}, nil
	case p.match(KindLeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(KindRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}

		return &Grouping{Expression: expr}, nil
	}

	return nil, p.error(p.peek(), "Expect expression.")
}

// synchronize discards tokens until just after a ';' or just before a
// keyword that begins a statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.eof() {
		if p.previous().Kind == KindSemicolon {
			return
		}

		switch p.peek().Kind {
		case KindClass, KindFun, KindVar, KindFor,
			KindIf, KindWhile, KindPrint, KindReturn:
			return
		}

		p.advance()
	}
}

// Helper methods

func (p *parser) match(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()

			return true
		}
	}

	return false
}

func (p *parser) consume(kind Kind, msg string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return Token{}, p.error(p.peek(), msg)
}

func (p *parser) check(kind Kind) bool {
	if p.eof() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *parser) advance() Token {
	if !p.eof() {
		p.current++
	}

	return p.previous()
}

func (p *parser) eof() bool {
	return p.peek().Kind == KindEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}

// error records a diagnostic at tok and returns the sentinel used to unwind
// to the enclosing declaration.
func (p *parser) error(tok Token, msg string) error {
	p.errs = append(p.errs, &SyntaxError{Token: tok, Message: msg})

	return errSync
}
