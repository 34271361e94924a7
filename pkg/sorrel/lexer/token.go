package lexer

import "fmt"

// TokenType represents different types of tokens
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	NEWLINE

	// Identifiers and literals
	IDENT   // add, foobar, x, y, ...
	INT     // 1343456
	DECIMAL // 3.14159, 2e10, 6.02e23
	STRING  // "foobar"

	// Operators
	ASSIGN // =
	PLUS   // +
	MINUS  // -
	TIMES  // *
	DIV    // /
	MODULO // %
	EQ     // ==
	NOT_EQ // !=
	LT     // <
	LTE    // <=
	GT     // >
	GTE    // >=
	AND    // &&
	OR     // ||
	NOT    // !

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	AT        // @ (index accessor)
	SEMICOLON // ;
	COLON     // : (type annotations, map entries)

	// Keywords
	CLASS
	ELSE
	EXTENDS
	FALSE
	FINAL
	FUNC
	FOR
	IF
	IN
	LET
	NEW
	NULL
	OVERRIDE
	PRIVATE
	RETURN
	SUPER
	TO
	THIS
	TRUE
	VAR
	WHILE
)

// Token represents a single token. Line and column are 1-based and point
// at the first character of the lexeme; they are carried for diagnostics
// only. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %s, Line: %d, Column: %d}",
		t.Type.String(), t.Literal, t.Line, t.Column)
}

var tokenNames = map[TokenType]string{
	EOF:       "EOF",
	NEWLINE:   "NEWLINE",
	IDENT:     "IDENT",
	INT:       "INT",
	DECIMAL:   "DECIMAL",
	STRING:    "STRING",
	ASSIGN:    "ASSIGN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	TIMES:     "TIMES",
	DIV:       "DIV",
	MODULO:    "MODULO",
	EQ:        "EQ",
	NOT_EQ:    "NOT_EQ",
	LT:        "LT",
	LTE:       "LTE",
	GT:        "GT",
	GTE:       "GTE",
	AND:       "AND",
	OR:        "OR",
	NOT:       "NOT",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	COMMA:     "COMMA",
	DOT:       "DOT",
	AT:        "AT",
	SEMICOLON: "SEMICOLON",
	COLON:     "COLON",
	CLASS:     "CLASS",
	ELSE:      "ELSE",
	EXTENDS:   "EXTENDS",
	FALSE:     "FALSE",
	FINAL:     "FINAL",
	FUNC:      "FUNC",
	FOR:       "FOR",
	IF:        "IF",
	IN:        "IN",
	LET:       "LET",
	NEW:       "NEW",
	NULL:      "NULL",
	OVERRIDE:  "OVERRIDE",
	PRIVATE:   "PRIVATE",
	RETURN:    "RETURN",
	SUPER:     "SUPER",
	TO:        "TO",
	THIS:      "THIS",
	TRUE:      "TRUE",
	VAR:       "VAR",
	WHILE:     "WHILE",
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the token type is a language keyword.
func (tt TokenType) IsKeyword() bool {
	return tt >= CLASS && tt <= WHILE
}

// Keywords is the fixed keyword table: exact, case-sensitive matches only.
// It is constructed once and must never be mutated; every Lexer holds a
// reference to it rather than consulting ambient state.
var Keywords = map[string]TokenType{
	"class":    CLASS,
	"else":     ELSE,
	"extends":  EXTENDS,
	"false":    FALSE,
	"final":    FINAL,
	"func":     FUNC,
	"for":      FOR,
	"if":       IF,
	"in":       IN,
	"let":      LET,
	"new":      NEW,
	"null":     NULL,
	"override": OVERRIDE,
	"private":  PRIVATE,
	"return":   RETURN,
	"super":    SUPER,
	"to":       TO,
	"this":     THIS,
	"true":     TRUE,
	"var":      VAR,
	"while":    WHILE,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(keywords map[string]TokenType, ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
