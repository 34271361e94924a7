// Package lexer turns sorrel source text into a stream of typed tokens.
//
// The scanner is a single-pass byte cursor with an ASCII fast path and
// UTF-8 decoding for multi-byte characters. Numeric literals are
// recognized by the table-driven machine in number.go; identifiers are
// classified against the fixed keyword table in token.go. Newlines are
// significant and emitted as tokens; all other whitespace is skipped.
//
// NextToken fails with a lex-class *errors.Error on unrecognized input;
// there is no error recovery.
package lexer

import (
	"unicode/utf8"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/chars"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
)

// Lexer represents the lexical analyzer
type Lexer struct {
	filename     string
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination (first byte)
	chRune       rune // current character as a rune (for Unicode support)
	chSize       int  // byte size of current character (1 for ASCII, 1-4 for UTF-8)
	line         int  // 1-based line of the current char
	column       int  // 1-based column of the current char

	keywords map[string]TokenType
}

// New creates a new lexer instance over the default keyword table.
func New(input string) *Lexer {
	return NewWithFilename(input, "<input>")
}

// NewWithFilename creates a new lexer instance with a specific filename
// (used only to annotate errors).
func NewWithFilename(input string, filename string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		column:   0,
		keywords: Keywords,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position.
// Uses a hybrid approach: ASCII fast-path for single-byte characters,
// UTF-8 decoding for multi-byte characters (to support Unicode identifiers).
func (l *Lexer) readChar() {
	// Advancing past a newline moves to the next line.
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL represents end of input
		l.chRune = 0
		l.chSize = 0
		l.position = l.readPosition
		l.column++
		return
	}

	b := l.input[l.readPosition]

	if b < utf8.RuneSelf {
		l.ch = b
		l.chRune = rune(b)
		l.chSize = 1
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = b
	l.chRune = r
	l.chSize = size
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.chSize == 0
}

// NextToken scans the input and returns the next token. It skips
// insignificant whitespace first, then dispatches on the significant
// character. When the cursor reaches the end of input it returns an
// EOF token; when no recognizer claims the character it fails with a
// lex-class error carrying the offending character and its position.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	line, column := l.line, l.column

	switch {
	case l.atEnd():
		return Token{Type: EOF, Literal: "", Line: line, Column: column}, nil

	case chars.IsNewline(l.chRune):
		l.readChar()
		return Token{Type: NEWLINE, Literal: "\n", Line: line, Column: column}, nil

	case chars.IsStringDelimiter(l.chRune):
		return l.readString()

	case chars.IsLetterOrUnderscore(l.chRune):
		literal := l.readIdentifier()
		return Token{Type: LookupIdent(l.keywords, literal), Literal: literal, Line: line, Column: column}, nil

	case chars.IsDigit(l.chRune) || l.chRune == '.':
		return l.readNumberOrDot()

	case chars.IsOperatorChar(l.chRune):
		return l.readOperator()

	case chars.IsDelimiter(l.chRune):
		tok := Token{Type: delimiters[l.ch], Literal: string(l.chRune), Line: line, Column: column}
		l.readChar()
		return tok, nil

	default:
		return Token{}, l.newError("LEX-0001", line, column, map[string]any{
			"Char": string(l.chRune),
		})
	}
}

// Tokenize repeatedly calls NextToken until end of input. The terminal
// EOF token is a sentinel and is excluded from the returned sequence.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// skipWhitespace advances past insignificant whitespace. Newlines stay:
// they terminate statements and are emitted as tokens.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && chars.IsWhitespace(l.chRune) {
		l.readChar()
	}
}

// readIdentifier greedily consumes identifier characters and returns
// the accumulated lexeme.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEnd() && chars.IsIdentifierChar(l.chRune) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumberOrDot delegates to the numeric machine. A recognized match
// becomes an INT or DECIMAL token depending on the final state; a bare
// non-numeric '.' becomes a DOT token advancing by one character only.
func (l *Lexer) readNumberOrDot() (Token, error) {
	line, column := l.line, l.column

	result := NumberMachine.Run(l.input[l.position:])
	if !result.Recognized {
		if l.chRune == '.' {
			l.readChar()
			return Token{Type: DOT, Literal: ".", Line: line, Column: column}, nil
		}
		// Any ASCII digit reaches an accepting state, so this is a
		// non-ASCII digit (IsDigit spans Unicode Nd); the numeric
		// grammar only admits ASCII digits.
		return Token{}, l.newError("LEX-0004", line, column, map[string]any{
			"Literal": truncate(l.input[l.position:], 12),
		})
	}

	for range result.Matched {
		l.readChar()
	}

	tokType := DECIMAL
	if result.Final == numInteger {
		tokType = INT
	}
	return Token{Type: tokType, Literal: result.Matched, Line: line, Column: column}, nil
}

// readString consumes from the opening '"' through the closing '"'
// inclusive. No escape sequences are processed. A string that reaches
// end of input without a closing quote is a lexical error.
func (l *Lexer) readString() (Token, error) {
	line, column := l.line, l.column
	start := l.position

	l.readChar() // consume opening '"'
	for !l.atEnd() && !chars.IsStringDelimiter(l.chRune) {
		l.readChar()
	}
	if l.atEnd() {
		return Token{}, l.newError("LEX-0002", line, column, nil)
	}
	l.readChar() // consume closing '"'

	return Token{Type: STRING, Literal: l.input[start:l.position], Line: line, Column: column}, nil
}

// readOperator disambiguates one- vs two-character operators with a
// single character of lookahead. A lone '&' or '|' has no one-character
// form and is a lexical error.
func (l *Lexer) readOperator() (Token, error) {
	line, column := l.line, l.column

	two := func(t TokenType, literal string) Token {
		l.readChar()
		l.readChar()
		return Token{Type: t, Literal: literal, Line: line, Column: column}
	}
	one := func(t TokenType) Token {
		literal := string(l.chRune)
		l.readChar()
		return Token{Type: t, Literal: literal, Line: line, Column: column}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			return two(EQ, "=="), nil
		}
		return one(ASSIGN), nil
	case '<':
		if l.peekChar() == '=' {
			return two(LTE, "<="), nil
		}
		return one(LT), nil
	case '>':
		if l.peekChar() == '=' {
			return two(GTE, ">="), nil
		}
		return one(GT), nil
	case '!':
		if l.peekChar() == '=' {
			return two(NOT_EQ, "!="), nil
		}
		return one(NOT), nil
	case '&':
		if l.peekChar() == '&' {
			return two(AND, "&&"), nil
		}
		return Token{}, l.newError("LEX-0003", line, column, map[string]any{"Char": "&"})
	case '|':
		if l.peekChar() == '|' {
			return two(OR, "||"), nil
		}
		return Token{}, l.newError("LEX-0003", line, column, map[string]any{"Char": "|"})
	case '+':
		return one(PLUS), nil
	case '-':
		return one(MINUS), nil
	case '*':
		return one(TIMES), nil
	case '/':
		return one(DIV), nil
	case '%':
		return one(MODULO), nil
	}

	return Token{}, l.newError("LEX-0001", line, column, map[string]any{
		"Char": string(l.chRune),
	})
}

var delimiters = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
	';': SEMICOLON,
	':': COLON,
	'@': AT,
}

// Filename returns the name the lexer annotates errors with.
func (l *Lexer) Filename() string {
	return l.filename
}

func (l *Lexer) newError(code string, line, column int, data map[string]any) *serrors.Error {
	err := serrors.NewWithPosition(code, line, column, data)
	if l.filename != "<input>" {
		err.File = l.filename
	}
	return err
}

// truncate returns the first n characters of a string, adding "..." if
// truncated. Counts runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i] + "..."
		}
		n--
	}
	return s
}
