package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `x = y + 1`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "x"},
		{TokenAssign, "="},
		{TokenIdent, "y"},
		{TokenPlus, "+"},
		{TokenNumber, "1"},
		{TokenNewline, ""},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * ** / // % @ << >> | ^ & ~ < <= > >= == != = += -= *= **= /= //= %= @=`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenDoubleStar, "**"},
		{TokenSlash, "/"},
		{TokenDoubleSlash, "//"},
		{TokenPercent, "%"},
		{TokenAt, "@"},
		{TokenShl, "<<"},
		{TokenShr, ">>"},
		{TokenPipe, "|"},
		{TokenCaret, "^"},
		{TokenAmpersand, "&"},
		{TokenTilde, "~"},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenAssign, "="},
		{TokenPlusAssign, "+="},
		{TokenMinusAssign, "-="},
		{TokenStarAssign, "*="},
		{TokenDoubleStarAssign, "**="},
		{TokenSlashAssign, "/="},
		{TokenDoubleSlashAssign, "//="},
		{TokenPercentAssign, "%="},
		{TokenAtAssign, "@="},
		{TokenNewline, ""},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `def class if elif else while for in with as try except finally return yield raise from import break continue pass lambda and or not is True False None name`

	tests := []TokenType{
		TokenDef, TokenClass, TokenIf, TokenElif, TokenElse, TokenWhile,
		TokenFor, TokenIn, TokenWith, TokenAs, TokenTry, TokenExcept,
		TokenFinally, TokenReturn, TokenYield, TokenRaise, TokenFrom,
		TokenImport, TokenBreak, TokenContinue, TokenPass, TokenLambda,
		TokenAnd, TokenOr, TokenNot, TokenIs, TokenTrue, TokenFalse,
		TokenNone, TokenIdent,
	}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, want, tok.Type)
		}
	}
}

func TestIndentation(t *testing.T) {
	input := "def f(x):\n    return x\n\nprint(f(1))\n"

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenDef, "def"},
		{TokenIdent, "f"},
		{TokenLParen, "("},
		{TokenIdent, "x"},
		{TokenRParen, ")"},
		{TokenColon, ":"},
		{TokenNewline, "\n"},
		{TokenIndent, ""},
		{TokenReturn, "return"},
		{TokenIdent, "x"},
		{TokenNewline, "\n"},
		{TokenDedent, ""},
		{TokenIdent, "print"},
		{TokenLParen, "("},
		{TokenIdent, "f"},
		{TokenLParen, "("},
		{TokenNumber, "1"},
		{TokenRParen, ")"},
		{TokenRParen, ")"},
		{TokenNewline, "\n"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNestedDedents(t *testing.T) {
	input := "if a:\n    if b:\n        pass\npass\n"

	tests := []TokenType{
		TokenIf, TokenIdent, TokenColon, TokenNewline,
		TokenIndent, TokenIf, TokenIdent, TokenColon, TokenNewline,
		TokenIndent, TokenPass, TokenNewline,
		TokenDedent, TokenDedent, TokenPass, TokenNewline,
		TokenEOF,
	}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, want, tok.Type)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	input := `'hello' "world" 'it\'s' f'{x}'`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenString, `'hello'`},
		{TokenString, `"world"`},
		{TokenString, `'it\'s'`},
		{TokenFString, `f'{x}'`},
		{TokenNewline, ""},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`'oops`)
	tok := l.NextToken()
	if tok.Type != TokenIllegal {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", TokenIllegal, tok.Type)
	}
	if tok.Literal != `'oops` {
		t.Fatalf("literal wrong. expected=%q, got=%q", `'oops`, tok.Literal)
	}
}

func TestBracketsSuppressNewlines(t *testing.T) {
	input := "f(a,\n  b)\n"

	tests := []TokenType{
		TokenIdent, TokenLParen, TokenIdent, TokenComma,
		TokenIdent, TokenRParen, TokenNewline, TokenEOF,
	}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, want, tok.Type)
		}
	}
}

func TestBackslashContinuation(t *testing.T) {
	input := "x = 1 + \\\n    2\n"

	tests := []TokenType{
		TokenIdent, TokenAssign, TokenNumber, TokenPlus,
		TokenNumber, TokenNewline, TokenEOF,
	}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, want, tok.Type)
		}
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	input := "# leading comment\nx = 1  # trailing\n\n# another\ny = 2\n"

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TokenIdent, "x"},
		{TokenAssign, "="},
		{TokenNumber, "1"},
		{TokenNewline, "\n"},
		{TokenIdent, "y"},
		{TokenAssign, "="},
		{TokenNumber, "2"},
		{TokenNewline, "\n"},
		{TokenEOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	input := "x = 1\ny = 'two'\n"

	tests := []struct {
		expectedType TokenType
		expectedLine int
		expectedCol  int
	}{
		{TokenIdent, 1, 0},
		{TokenAssign, 1, 2},
		{TokenNumber, 1, 4},
		{TokenNewline, 1, 5},
		{TokenIdent, 2, 0},
		{TokenAssign, 2, 2},
		{TokenString, 2, 4},
		{TokenNewline, 2, 9},
		{TokenEOF, 3, 0},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Line != tt.expectedLine || tok.Column != tt.expectedCol {
			t.Fatalf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d",
				i, tt.expectedLine, tt.expectedCol, tok.Line, tok.Column)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := `42 1.5 0x1f 1e10 2.5e-3 1_000`

	tests := []string{"42", "1.5", "0x1f", "1e10", "2.5e-3", "1_000"}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != TokenNumber {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, TokenNumber, tok.Type)
		}
		if tok.Literal != want {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, want, tok.Literal)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`'hello'`, "hello"},
		{`"hello"`, "hello"},
		{`'it\'s'`, "it's"},
		{`'a\nb'`, "a\nb"},
		{`'a\tb'`, "a\tb"},
		{`'a\\b'`, `a\b`},
		{`'\x41'`, "A"},
		{`'\q'`, `\q`},
		{`''`, ""},
	}

	for i, tt := range tests {
		if got := Unquote(tt.raw); got != tt.want {
			t.Fatalf("tests[%d] - Unquote(%q) wrong. expected=%q, got=%q",
				i, tt.raw, tt.want, got)
		}
	}
}
