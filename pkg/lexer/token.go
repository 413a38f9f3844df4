package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Logical line structure
	TokenNewline
	TokenIndent
	TokenDedent

	// Literals
	TokenIdent   // foo, x
	TokenNumber  // 42, 1.5, 0x10
	TokenString  // 'hello', "hello"
	TokenFString // f'{x}'

	// Keywords
	TokenDef
	TokenClass
	TokenIf
	TokenElif
	TokenElse
	TokenWhile
	TokenFor
	TokenIn
	TokenWith
	TokenAs
	TokenTry
	TokenExcept
	TokenFinally
	TokenReturn
	TokenYield
	TokenRaise
	TokenFrom
	TokenImport
	TokenBreak
	TokenContinue
	TokenPass
	TokenLambda
	TokenAnd
	TokenOr
	TokenNot
	TokenIs
	TokenTrue
	TokenFalse
	TokenNone

	// Operators
	TokenPlus        // +
	TokenMinus       // -
	TokenStar        // *
	TokenDoubleStar  // **
	TokenSlash       // /
	TokenDoubleSlash // //
	TokenPercent     // %
	TokenAt          // @
	TokenShl         // <<
	TokenShr         // >>
	TokenPipe        // |
	TokenCaret       // ^
	TokenAmpersand   // &
	TokenTilde       // ~
	TokenLt          // <
	TokenLe          // <=
	TokenGt          // >
	TokenGe          // >=
	TokenEq          // ==
	TokenNe          // !=
	TokenAssign      // =

	// Compound assignment operators
	TokenPlusAssign        // +=
	TokenMinusAssign       // -=
	TokenStarAssign        // *=
	TokenDoubleStarAssign  // **=
	TokenSlashAssign       // /=
	TokenDoubleSlashAssign // //=
	TokenPercentAssign     // %=
	TokenAtAssign          // @=

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenComma    // ,
	TokenColon    // :
	TokenDot      // .
)

var tokenNames = map[TokenType]string{
	TokenEOF:               "EOF",
	TokenIllegal:           "ILLEGAL",
	TokenNewline:           "NEWLINE",
	TokenIndent:            "INDENT",
	TokenDedent:            "DEDENT",
	TokenIdent:             "IDENT",
	TokenNumber:            "NUMBER",
	TokenString:            "STRING",
	TokenFString:           "FSTRING",
	TokenDef:               "def",
	TokenClass:             "class",
	TokenIf:                "if",
	TokenElif:              "elif",
	TokenElse:              "else",
	TokenWhile:             "while",
	TokenFor:               "for",
	TokenIn:                "in",
	TokenWith:              "with",
	TokenAs:                "as",
	TokenTry:               "try",
	TokenExcept:            "except",
	TokenFinally:           "finally",
	TokenReturn:            "return",
	TokenYield:             "yield",
	TokenRaise:             "raise",
	TokenFrom:              "from",
	TokenImport:            "import",
	TokenBreak:             "break",
	TokenContinue:          "continue",
	TokenPass:              "pass",
	TokenLambda:            "lambda",
	TokenAnd:               "and",
	TokenOr:                "or",
	TokenNot:               "not",
	TokenIs:                "is",
	TokenTrue:              "True",
	TokenFalse:             "False",
	TokenNone:              "None",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenDoubleStar:        "**",
	TokenSlash:             "/",
	TokenDoubleSlash:       "//",
	TokenPercent:           "%",
	TokenAt:                "@",
	TokenShl:               "<<",
	TokenShr:               ">>",
	TokenPipe:              "|",
	TokenCaret:             "^",
	TokenAmpersand:         "&",
	TokenTilde:             "~",
	TokenLt:                "<",
	TokenLe:                "<=",
	TokenGt:                ">",
	TokenGe:                ">=",
	TokenEq:                "==",
	TokenNe:                "!=",
	TokenAssign:            "=",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenDoubleStarAssign:  "**=",
	TokenSlashAssign:       "/=",
	TokenDoubleSlashAssign: "//=",
	TokenPercentAssign:     "%=",
	TokenAtAssign:          "@=",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenComma:             ",",
	TokenColon:             ":",
	TokenDot:               ".",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token. Line is 1-based, Column is the
// 0-based column of the token's first character.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"def":      TokenDef,
	"class":    TokenClass,
	"if":       TokenIf,
	"elif":     TokenElif,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"in":       TokenIn,
	"with":     TokenWith,
	"as":       TokenAs,
	"try":      TokenTry,
	"except":   TokenExcept,
	"finally":  TokenFinally,
	"return":   TokenReturn,
	"yield":    TokenYield,
	"raise":    TokenRaise,
	"from":     TokenFrom,
	"import":   TokenImport,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"pass":     TokenPass,
	"lambda":   TokenLambda,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"is":       TokenIs,
	"True":     TokenTrue,
	"False":    TokenFalse,
	"None":     TokenNone,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
