// Package chars provides character classification for the sorrel lexer.
//
// All predicates are pure functions over a single rune. ASCII characters
// (the overwhelmingly common case) are classified through precomputed
// lookup tables; everything else falls back to the unicode package so
// that every code point the lexer can encounter has a defined class.
package chars

import "unicode"

var (
	asciiDigit      [128]bool
	asciiLetter     [128]bool
	asciiWhitespace [128]bool // excludes newline
	asciiIdentPart  [128]bool
	asciiOperator   [128]bool
	asciiDelimiter  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		asciiDigit[i] = '0' <= ch && ch <= '9'
		asciiLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')

		// Newlines are significant tokens, not whitespace.
		asciiWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v'

		asciiIdentPart[i] = asciiLetter[i] || asciiDigit[i] || ch == '_' || ch == '-' || ch == '$'

		switch ch {
		case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|':
			asciiOperator[i] = true
		}

		switch ch {
		case '(', ')', '{', '}', '[', ']', ',', ';', ':', '@':
			asciiDelimiter[i] = true
		}
	}
}

// IsDigit reports whether r is a decimal digit.
func IsDigit(r rune) bool {
	if r < 128 {
		return asciiDigit[r]
	}
	return unicode.IsDigit(r)
}

// IsLetter reports whether r is a letter.
func IsLetter(r rune) bool {
	if r < 128 {
		return asciiLetter[r]
	}
	return unicode.IsLetter(r)
}

// IsLetterOrUnderscore reports whether r can start an identifier.
func IsLetterOrUnderscore(r rune) bool {
	return r == '_' || IsLetter(r)
}

// IsIdentifierChar reports whether r can appear inside an identifier:
// letters, digits, '_', '-', and '$'.
func IsIdentifierChar(r rune) bool {
	if r < 128 {
		return asciiIdentPart[r]
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsWhitespace reports whether r is insignificant whitespace.
// Newlines are excluded: they terminate statements and are lexed as tokens.
func IsWhitespace(r rune) bool {
	if r < 128 {
		return asciiWhitespace[r]
	}
	return r != '\n' && unicode.IsSpace(r)
}

// IsNewline reports whether r is a newline character.
func IsNewline(r rune) bool {
	return r == '\n'
}

// IsOperatorChar reports whether r can begin an operator
// (arithmetic, comparison, or boolean logic).
func IsOperatorChar(r rune) bool {
	return r < 128 && asciiOperator[r]
}

// IsDelimiter reports whether r is single-character punctuation.
// The dot is not listed here: it is claimed by the number-or-dot
// recognizer so that decimals like ".5" lex correctly.
func IsDelimiter(r rune) bool {
	return r < 128 && asciiDelimiter[r]
}

// IsStringDelimiter reports whether r opens or closes a string literal.
func IsStringDelimiter(r rune) bool {
	return r == '"'
}
