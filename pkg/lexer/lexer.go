// Package lexer tokenizes Python source code, producing tokens annotated
// with their original line and column. Logical line structure (NEWLINE,
// INDENT, DEDENT) is part of the token stream; newlines inside brackets
// and backslash continuations are treated as plain whitespace.
package lexer

import (
	"strconv"
	"strings"
)

// Lexer tokenizes Python source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int  // 1-based line of ch
	col     int  // 0-based column of ch

	indents      []int
	pending      []Token
	bracketDepth int
	atLineStart  bool
	eofNewline   bool
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		col:         -1,
		indents:     []int{0},
		atLineStart: true,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	advLine := l.ch == '\n'
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	if advLine {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}
		if l.atLineStart && l.bracketDepth == 0 {
			l.scanIndentation()
			continue
		}
		break
	}

	l.skipSpaces()

	tok := Token{Line: l.line, Column: l.col}

	switch l.ch {
	case 0:
		if !l.eofNewline && l.col > 0 {
			// synthesize the final NEWLINE for files that end mid-line
			l.eofNewline = true
			l.atLineStart = true
			tok.Type = TokenNewline
			return tok
		}
		tok.Type = TokenEOF
		return tok
	case '\n':
		tok.Type = TokenNewline
		tok.Literal = "\n"
		l.readChar()
		l.atLineStart = true
		return tok
	case '+':
		return l.opToken(TokenPlus, TokenPlusAssign)
	case '-':
		return l.opToken(TokenMinus, TokenMinusAssign)
	case '*':
		return l.doubledOpToken('*', TokenStar, TokenStarAssign, TokenDoubleStar, TokenDoubleStarAssign)
	case '/':
		return l.doubledOpToken('/', TokenSlash, TokenSlashAssign, TokenDoubleSlash, TokenDoubleSlashAssign)
	case '%':
		return l.opToken(TokenPercent, TokenPercentAssign)
	case '@':
		return l.opToken(TokenAt, TokenAtAssign)
	case '<':
		l.readChar()
		switch l.ch {
		case '<':
			l.readChar()
			tok.Type, tok.Literal = TokenShl, "<<"
		case '=':
			l.readChar()
			tok.Type, tok.Literal = TokenLe, "<="
		default:
			tok.Type, tok.Literal = TokenLt, "<"
		}
		return tok
	case '>':
		l.readChar()
		switch l.ch {
		case '>':
			l.readChar()
			tok.Type, tok.Literal = TokenShr, ">>"
		case '=':
			l.readChar()
			tok.Type, tok.Literal = TokenGe, ">="
		default:
			tok.Type, tok.Literal = TokenGt, ">"
		}
		return tok
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenEq, "=="
		} else {
			tok.Type, tok.Literal = TokenAssign, "="
		}
		return tok
	case '!':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type, tok.Literal = TokenNe, "!="
		} else {
			tok.Type, tok.Literal = TokenIllegal, "!"
		}
		return tok
	case '|':
		return l.simpleToken(TokenPipe)
	case '^':
		return l.simpleToken(TokenCaret)
	case '&':
		return l.simpleToken(TokenAmpersand)
	case '~':
		return l.simpleToken(TokenTilde)
	case '(':
		l.bracketDepth++
		return l.simpleToken(TokenLParen)
	case ')':
		l.bracketDepth--
		return l.simpleToken(TokenRParen)
	case '[':
		l.bracketDepth++
		return l.simpleToken(TokenLBracket)
	case ']':
		l.bracketDepth--
		return l.simpleToken(TokenRBracket)
	case '{':
		l.bracketDepth++
		return l.simpleToken(TokenLBrace)
	case '}':
		l.bracketDepth--
		return l.simpleToken(TokenRBrace)
	case ',':
		return l.simpleToken(TokenComma)
	case ':':
		return l.simpleToken(TokenColon)
	case '.':
		return l.simpleToken(TokenDot)
	case '\'', '"':
		raw, ok := l.readString(l.ch)
		tok.Literal = raw
		if ok {
			tok.Type = TokenString
		} else {
			tok.Type = TokenIllegal
		}
		return tok
	}

	if isLetter(l.ch) {
		tok.Literal = l.readIdentifier()
		if (tok.Literal == "f" || tok.Literal == "F") && (l.ch == '\'' || l.ch == '"') {
			raw, ok := l.readString(l.ch)
			tok.Literal += raw
			if ok {
				tok.Type = TokenFString
			} else {
				tok.Type = TokenIllegal
			}
			return tok
		}
		tok.Type = LookupIdent(tok.Literal)
		return tok
	}
	if isDigit(l.ch) {
		tok.Type = TokenNumber
		tok.Literal = l.readNumber()
		return tok
	}

	tok.Type = TokenIllegal
	tok.Literal = string(l.ch)
	l.readChar()
	return tok
}

// scanIndentation consumes leading whitespace on a new logical line,
// skipping blank and comment-only lines, and queues INDENT/DEDENT tokens
// against the indent stack.
func (l *Lexer) scanIndentation() {
	width := 0
	for {
		width = 0
		for l.ch == ' ' {
			width++
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		break
	}
	l.atLineStart = false
	if l.ch == 0 {
		width = 0
	}
	if width > l.indents[len(l.indents)-1] {
		l.indents = append(l.indents, width)
		l.pending = append(l.pending, Token{Type: TokenIndent, Line: l.line, Column: 0})
		return
	}
	for width < l.indents[len(l.indents)-1] {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, Token{Type: TokenDedent, Line: l.line, Column: width})
	}
}

func (l *Lexer) skipSpaces() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n' && l.bracketDepth > 0:
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) simpleToken(t TokenType) Token {
	tok := Token{Type: t, Literal: string(l.ch), Line: l.line, Column: l.col}
	l.readChar()
	return tok
}

func (l *Lexer) opToken(plain, assign TokenType) Token {
	tok := Token{Type: plain, Literal: string(l.ch), Line: l.line, Column: l.col}
	l.readChar()
	if l.ch == '=' {
		tok.Type = assign
		tok.Literal += "="
		l.readChar()
	}
	return tok
}

// doubledOpToken handles the * / family where the character may repeat
// (**, //) and both forms take an optional trailing =
func (l *Lexer) doubledOpToken(c byte, plain, assign, double, doubleAssign TokenType) Token {
	tok := Token{Line: l.line, Column: l.col}
	l.readChar()
	if l.ch == c {
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			tok.Type, tok.Literal = doubleAssign, string(c)+string(c)+"="
		} else {
			tok.Type, tok.Literal = double, string(c)+string(c)
		}
		return tok
	}
	if l.ch == '=' {
		l.readChar()
		tok.Type, tok.Literal = assign, string(c)+"="
		return tok
	}
	tok.Type, tok.Literal = plain, string(c)
	return tok
}

// readString consumes a quoted string literal and returns its raw source
// text including the quotes. ok is false when the literal is unterminated.
func (l *Lexer) readString(quote byte) (string, bool) {
	start := l.pos
	l.readChar() // opening quote
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.pos], false
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar() // closing quote
	return l.input[start:l.pos], true
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) || isLetter(l.ch) || l.ch == '.' || l.ch == '_' {
		c := l.ch
		l.readChar()
		if (c == 'e' || c == 'E') && (l.ch == '+' || l.ch == '-') && isDigit(l.peekChar()) {
			l.readChar()
		}
	}
	return l.input[start:l.pos]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Unquote decodes a string literal's raw source text (including quotes)
// into its value. Unknown escapes keep the backslash, as Python does.
func Unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
