package lang

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical category of a [Token].
type Kind int

const (
	// Single-character punctuation and operators.
	KindLeftParen Kind = iota
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindComma
	KindDot
	KindMinus
	KindPlus
	KindSemicolon
	KindSlash
	KindStar

	// One or two character operators.
	KindBang
	KindBangEqual
	KindEqual
	KindEqualEqual
	KindGreater
	KindGreaterEqual
	KindLess
	KindLessEqual

	// Literals.
	KindIdentifier
	KindString
	KindNumber

	// Keywords.
	KindAnd
	KindClass
	KindElse
	KindFalse
	KindFun
	KindFor
	KindIf
	KindNil
	KindOr
	KindPrint
	KindReturn
	KindSuper
	KindThis
	KindTrue
	KindVar
	KindWhile

	KindEOF
)

var kindName = [...]string{
	KindLeftParen:    "LEFT_PAREN",
	KindRightParen:   "RIGHT_PAREN",
	KindLeftBrace:    "LEFT_BRACE",
	KindRightBrace:   "RIGHT_BRACE",
	KindComma:        "COMMA",
	KindDot:          "DOT",
	KindMinus:        "MINUS",
	KindPlus:         "PLUS",
	KindSemicolon:    "SEMICOLON",
	KindSlash:        "SLASH",
	KindStar:         "STAR",
	KindBang:         "BANG",
	KindBangEqual:    "BANG_EQUAL",
	KindEqual:        "EQUAL",
	KindEqualEqual:   "EQUAL_EQUAL",
	KindGreater:      "GREATER",
	KindGreaterEqual: "GREATER_EQUAL",
	KindLess:         "LESS",
	KindLessEqual:    "LESS_EQUAL",
	KindIdentifier:   "IDENTIFIER",
	KindString:       "STRING",
	KindNumber:       "NUMBER",
	KindAnd:          "AND",
	KindClass:        "CLASS",
	KindElse:         "ELSE",
	KindFalse:        "FALSE",
	KindFun:          "FUN",
	KindFor:          "FOR",
	KindIf:           "IF",
	KindNil:          "NIL",
	KindOr:           "OR",
	KindPrint:        "PRINT",
	KindReturn:       "RETURN",
	KindSuper:        "SUPER",
	KindThis:         "THIS",
	KindTrue:         "TRUE",
	KindVar:          "VAR",
	KindWhile:        "WHILE",
	KindEOF:          "EOF",
}

// String returns the conventional upper-case name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"and":    KindAnd,
	"class":  KindClass,
	"else":   KindElse,
	"false":  KindFalse,
	"for":    KindFor,
	"fun":    KindFun,
	"if":     KindIf,
	"nil":    KindNil,
	"or":     KindOr,
	"print":  KindPrint,
	"return": KindReturn,
	"super":  KindSuper,
	"this":   KindThis,
	"true":   KindTrue,
	"var":    KindVar,
	"while":  KindWhile,
}

// Keywords returns the reserved words of the language in lexical order.
func Keywords() []string {
	return sortedKeys(keywords)
}

// Token is an immutable lexical unit produced by [Scan].
//
// Literal is non-nil only for number and string tokens.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal Value
	Line    int
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Kind, t.Lexeme)
	}

	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, Stringify(t.Literal))
}
