package lang

import (
	"slices"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}

	return out
}

func TestScan_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "empty",
			input: "",
			want:  []Kind{KindEOF},
		},
		{
			name:  "var declaration",
			input: "var x = 1.5;",
			want: []Kind{
				KindVar, KindIdentifier, KindEqual, KindNumber, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "two-character operators",
			input: "!= == <= >= ! = < >",
			want: []Kind{
				KindBangEqual, KindEqualEqual, KindLessEqual, KindGreaterEqual,
				KindBang, KindEqual, KindLess, KindGreater, KindEOF,
			},
		},
		{
			name:  "punctuation",
			input: "(){},.-+;*/",
			want: []Kind{
				KindLeftParen, KindRightParen, KindLeftBrace, KindRightBrace,
				KindComma, KindDot, KindMinus, KindPlus, KindSemicolon,
				KindStar, KindSlash, KindEOF,
			},
		},
		{
			name:  "comment skipped",
			input: "// nothing here\nprint",
			want:  []Kind{KindPrint, KindEOF},
		},
		{
			name:  "trailing dot is not fractional",
			input: "1.",
			want:  []Kind{KindNumber, KindDot, KindEOF},
		},
		{
			name:  "keywords and identifiers",
			input: "and class else false for fun if nil or print return super this true var while orchid",
			want: []Kind{
				KindAnd, KindClass, KindElse, KindFalse, KindFor, KindFun,
				KindIf, KindNil, KindOr, KindPrint, KindReturn, KindSuper,
				KindThis, KindTrue, KindVar, KindWhile, KindIdentifier, KindEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Scan(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if got := kinds(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_Literals(t *testing.T) {
	tokens, errs := Scan(`"hello" 12 3.25 name`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if got, want := tokens[0].Literal, Value(String("hello")); got != want {
		t.Errorf("string literal = %#v, want %#v", got, want)
	}

	if got, want := tokens[0].Lexeme, `"hello"`; got != want {
		t.Errorf("string lexeme = %q, want %q", got, want)
	}

	if got, want := tokens[1].Literal, Value(Number(12)); got != want {
		t.Errorf("integer literal = %#v, want %#v", got, want)
	}

	if got, want := tokens[2].Literal, Value(Number(3.25)); got != want {
		t.Errorf("fractional literal = %#v, want %#v", got, want)
	}

	if tokens[3].Literal != nil {
		t.Errorf("identifier literal = %#v, want nil", tokens[3].Literal)
	}
}

func TestScan_Lines(t *testing.T) {
	tokens, errs := Scan("var a;\n\"multi\nline\"\nprint")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []int{1, 1, 1, 3, 4, 4}

	for i, tok := range tokens {
		if tok.Line != want[i] {
			t.Errorf("token %d (%v) line = %d, want %d", i, tok, tok.Line, want[i])
		}
	}
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErrs []string
		want     []Kind
	}{
		{
			name:     "unexpected character",
			input:    "var @ x;",
			wantErrs: []string{"[line 1] Error: Unexpected character."},
			want:     []Kind{KindVar, KindIdentifier, KindSemicolon, KindEOF},
		},
		{
			name:     "unterminated string",
			input:    "print \"abc",
			wantErrs: []string{"[line 1] Error: Unterminated string."},
			want:     []Kind{KindPrint, KindEOF},
		},
		{
			name:  "several errors",
			input: "#\n$",
			wantErrs: []string{
				"[line 1] Error: Unexpected character.",
				"[line 2] Error: Unexpected character.",
			},
			want: []Kind{KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Scan(tt.input)

			if len(errs) != len(tt.wantErrs) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.wantErrs))
			}

			for i, err := range errs {
				if err.Error() != tt.wantErrs[i] {
					t.Errorf("error %d = %q, want %q", i, err.Error(), tt.wantErrs[i])
				}
			}

			if got := kinds(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_NumberRoundTrip(t *testing.T) {
	inputs := []string{"0", "7", "123", "3.14", "0.5", "100.25", "1.0", "0.1", "98765.4321"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, errs := Scan(in)
			if len(errs) != 0 || first[0].Kind != KindNumber {
				t.Fatalf("scan %q: %v %v", in, first, errs)
			}

			rendered := Stringify(first[0].Literal)

			second, errs := Scan(rendered)
			if len(errs) != 0 || second[0].Kind != KindNumber {
				t.Fatalf("rescan %q: %v %v", rendered, second, errs)
			}

			if first[0].Literal != second[0].Literal {
				t.Errorf("round trip %q -> %q: %v != %v",
					in, rendered, first[0].Literal, second[0].Literal)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindBangEqual.String(); got != "BANG_EQUAL" {
		t.Errorf("KindBangEqual.String() = %q", got)
	}

	if got := Kind(-1).String(); got != "Kind(-1)" {
		t.Errorf("Kind(-1).String() = %q", got)
	}
}

func TestKeywords(t *testing.T) {
	kw := Keywords()

	if len(kw) != 16 {
		t.Fatalf("got %d keywords, want 16", len(kw))
	}

	if !slices.IsSorted(kw) {
		t.Errorf("keywords not sorted: %v", kw)
	}
}
