package lang

import (
	"strconv"
	"unicode/utf8"
)

// Scan converts source text into an ordered sequence of tokens terminated
// by a single EOF token.
//
// Scanning never stops early: unexpected characters and unterminated strings
// are reported in the returned errors and omitted from the token stream.
func Scan(source string) ([]Token, []error) {
	s := &scanner{
		source: source,
		line:   1,
	}

	for !s.eof() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, Token{Kind: KindEOF, Line: s.line})

	return s.tokens, s.errs
}

// scanner holds the two-cursor window over the source.
type scanner struct {
	source  string
	start   int
	current int
	line    int
	tokens  []Token
	errs    []error
}

func (s *scanner) scanToken() {
	c := s.advance()

	switch c {
	case '(':
		s.emit(KindLeftParen)
	case ')':
		s.emit(KindRightParen)
	case '{':
		s.emit(KindLeftBrace)
	case '}':
		s.emit(KindRightBrace)
	case ',':
		s.emit(KindComma)
	case '.':
		s.emit(KindDot)
	case '-':
		s.emit(KindMinus)
	case '+':
		s.emit(KindPlus)
	case ';':
		s.emit(KindSemicolon)
	case '*':
		s.emit(KindStar)

	case '!':
		s.emit(s.either('=', KindBangEqual, KindBang))
	case '=':
		s.emit(s.either('=', KindEqualEqual, KindEqual))
	case '<':
		s.emit(s.either('=', KindLessEqual, KindLess))
	case '>':
		s.emit(s.either('=', KindGreaterEqual, KindGreater))

	case '/':
		if s.match('/') {
			// Comment runs to end of line; the newline is scanned next.
			for s.peek() != '\n' && !s.eof() {
				s.advance()
			}
		} else {
			s.emit(KindSlash)
		}

	case ' ', '\r', '\t':

	case '\n':
		s.line++

	case '"':
		s.string()

	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.report("Unexpected character.")
		}
	}
}

func (s *scanner) string() {
	for s.peek() != '"' && !s.eof() {
		if s.peek() == '\n' {
			s.line++
		}

		s.advance()
	}

	if s.eof() {
		s.report("Unterminated string.")

		return
	}

	s.advance() // closing quote

	s.emitLiteral(KindString, String(s.source[s.start+1:s.current-1]))
}

func (s *scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// A fractional part needs at least one digit after the dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	f, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		s.report("Invalid number.")

		return
	}

	s.emitLiteral(KindNumber, Number(f))
}

func (s *scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	kind, ok := keywords[s.lexeme()]
	if !ok {
		kind = KindIdentifier
	}

	s.emit(kind)
}

// Helper methods

func (s *scanner) eof() bool {
	return s.current >= len(s.source)
}

func (s *scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size

	return r
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.current:])

	return r
}

func (s *scanner) peekNext() rune {
	if s.eof() {
		return 0
	}

	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.current+size:])

	return r
}

func (s *scanner) match(expected rune) bool {
	if s.peek() != expected || s.eof() {
		return false
	}

	s.advance()

	return true
}

// either consumes expected when it is next and returns matched, otherwise
// it returns bare.
func (s *scanner) either(expected rune, matched, bare Kind) Kind {
	if s.match(expected) {
		return matched
	}

	return bare
}

func (s *scanner) lexeme() string {
	return s.source[s.start:s.current]
}

func (s *scanner) emit(kind Kind) {
	s.emitLiteral(kind, nil)
}

func (s *scanner) emitLiteral(kind Kind, literal Value) {
	s.tokens = append(s.tokens, Token{
		Kind:    kind,
		Lexeme:  s.lexeme(),
		Literal: literal,
		Line:    s.line,
	})
}

func (s *scanner) report(msg string) {
	s.errs = append(s.errs, &ScanError{Line: s.line, Message: msg})
}

// Character classification

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
