package lexer

import (
	"testing"
	"unicode/utf8"

	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5, ten = 10 in five + ten
add(x, y) = { x + y }
result = add(five, ten)
!-/*5
5 < 10 > 5
true && false || true
pi = 3.14159
avogadro = 6.02e23
[1, 2]@0
node.value
`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{LET, "let"},
		{IDENT, "five"},
		{ASSIGN, "="},
		{INT, "5"},
		{COMMA, ","},
		{IDENT, "ten"},
		{ASSIGN, "="},
		{INT, "10"},
		{IN, "in"},
		{IDENT, "five"},
		{PLUS, "+"},
		{IDENT, "ten"},
		{NEWLINE, "\n"},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "x"},
		{COMMA, ","},
		{IDENT, "y"},
		{RPAREN, ")"},
		{ASSIGN, "="},
		{LBRACE, "{"},
		{IDENT, "x"},
		{PLUS, "+"},
		{IDENT, "y"},
		{RBRACE, "}"},
		{NEWLINE, "\n"},
		{IDENT, "result"},
		{ASSIGN, "="},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "five"},
		{COMMA, ","},
		{IDENT, "ten"},
		{RPAREN, ")"},
		{NEWLINE, "\n"},
		{NOT, "!"},
		{MINUS, "-"},
		{DIV, "/"},
		{TIMES, "*"},
		{INT, "5"},
		{NEWLINE, "\n"},
		{INT, "5"},
		{LT, "<"},
		{INT, "10"},
		{GT, ">"},
		{INT, "5"},
		{NEWLINE, "\n"},
		{TRUE, "true"},
		{AND, "&&"},
		{FALSE, "false"},
		{OR, "||"},
		{TRUE, "true"},
		{NEWLINE, "\n"},
		{IDENT, "pi"},
		{ASSIGN, "="},
		{DECIMAL, "3.14159"},
		{NEWLINE, "\n"},
		{IDENT, "avogadro"},
		{ASSIGN, "="},
		{DECIMAL, "6.02e23"},
		{NEWLINE, "\n"},
		{LBRACKET, "["},
		{INT, "1"},
		{COMMA, ","},
		{INT, "2"},
		{RBRACKET, "]"},
		{AT, "@"},
		{INT, "0"},
		{NEWLINE, "\n"},
		{IDENT, "node"},
		{DOT, "."},
		{IDENT, "value"},
		{NEWLINE, "\n"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTwoCharacterOperators(t *testing.T) {
	input := `== != <= >= && ||`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{EQ, "=="},
		{NOT_EQ, "!="},
		{LTE, "<="},
		{GTE, ">="},
		{AND, "&&"},
		{OR, "||"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - got {%q, %q}, want {%q, %q}",
				i, tok.Type, tok.Literal, tt.expectedType, tt.expectedLiteral)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `class else extends false final func for if in let new null override private return super to this true var while`

	expected := []TokenType{
		CLASS, ELSE, EXTENDS, FALSE, FINAL, FUNC, FOR, IF, IN, LET,
		NEW, NULL, OVERRIDE, PRIVATE, RETURN, SUPER, TO, THIS, TRUE, VAR, WHILE,
	}

	l := New(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("token %d: unexpected error: %v", i, err)
		}
		if tok.Type != want {
			t.Errorf("token %d: got %q, want %q", i, tok.Type, want)
		}
		if !tok.Type.IsKeyword() {
			t.Errorf("token %d: %q should report IsKeyword", i, tok.Literal)
		}
	}
}

func TestIdentifierCharacters(t *testing.T) {
	// '-' and '$' are identifier characters, so 'a-b' is one symbol.
	tests := []struct {
		input   string
		literal string
	}{
		{"a-b", "a-b"},
		{"$price", "$price"},
		{"snake_case", "snake_case"},
		{"mixedCase99", "mixedCase99"},
		{"_hidden", "_hidden"},
		{"classes", "classes"}, // keyword prefix stays an identifier
		{"Whale", "Whale"},     // keywords are case-sensitive
	}

	for _, tt := range tests {
		tok, err := New(tt.input).NextToken()
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", tt.input, err)
		}
		if tok.Type != IDENT {
			t.Errorf("input %q: got type %q, want IDENT", tt.input, tok.Type)
		}
		if tok.Literal != tt.literal {
			t.Errorf("input %q: got literal %q, want %q", tt.input, tok.Literal, tt.literal)
		}
	}
}

func TestNumberLexing(t *testing.T) {
	tests := []struct {
		input    string
		expected []struct {
			tokType TokenType
			literal string
		}
	}{
		{"42", []struct {
			tokType TokenType
			literal string
		}{{INT, "42"}}},
		{"3.14", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, "3.14"}}},
		{".5", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, ".5"}}},
		{"2e10", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, "2e10"}}},
		{"1e-3", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, "1e-3"}}},
		{"6.02E+23", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, "6.02E+23"}}},
		// Greedy match backs off to the longest accepted prefix:
		// "42." is the integer 42 followed by a dot.
		{"42.", []struct {
			tokType TokenType
			literal string
		}{{INT, "42"}, {DOT, "."}}},
		// "1e" dead-ends after the exponent marker; the integer is kept
		// and the 'e' lexes as an identifier.
		{"1e", []struct {
			tokType TokenType
			literal string
		}{{INT, "1"}, {IDENT, "e"}}},
		{"1.2.3", []struct {
			tokType TokenType
			literal string
		}{{DECIMAL, "1.2"}, {DECIMAL, ".3"}}},
	}

	for _, tt := range tests {
		tokens, err := New(tt.input).Tokenize()
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", tt.input, err)
		}
		if len(tokens) != len(tt.expected) {
			t.Fatalf("input %q: got %d tokens, want %d: %v", tt.input, len(tokens), len(tt.expected), tokens)
		}
		for i, want := range tt.expected {
			if tokens[i].Type != want.tokType || tokens[i].Literal != want.literal {
				t.Errorf("input %q token %d: got {%q, %q}, want {%q, %q}",
					tt.input, i, tokens[i].Type, tokens[i].Literal, want.tokType, want.literal)
			}
		}
	}
}

func TestStringLexing(t *testing.T) {
	tok, err := New(`"Hello, World!"`).NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != STRING {
		t.Fatalf("got type %q, want STRING", tok.Type)
	}
	// The lexeme keeps its quotes so source can be reconstructed.
	if tok.Literal != `"Hello, World!"` {
		t.Errorf("got literal %q, want %q", tok.Literal, `"Hello, World!"`)
	}
}

func TestStringNoEscapeProcessing(t *testing.T) {
	tok, err := New(`"a\nb"`).NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Literal != `"a\nb"` {
		t.Errorf("escape sequences must pass through verbatim, got %q", tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`x = "oops`).Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
	serr, ok := err.(*serrors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if !serr.IsLexError() {
		t.Errorf("expected a lex-class error, got %q", serr.Class)
	}
	if serr.Code != "LEX-0002" {
		t.Errorf("expected LEX-0002, got %q", serr.Code)
	}
	if serr.Line != 1 || serr.Column != 5 {
		t.Errorf("error should point at the opening quote, got %d:%d", serr.Line, serr.Column)
	}
}

func TestLoneAmpersand(t *testing.T) {
	_, err := New("a & b").Tokenize()
	if err == nil {
		t.Fatal("expected an error for a lone '&'")
	}
	serr, ok := err.(*serrors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if serr.Code != "LEX-0003" {
		t.Errorf("expected LEX-0003, got %q", serr.Code)
	}
}

func TestLonePipe(t *testing.T) {
	_, err := New("a | b").Tokenize()
	if err == nil {
		t.Fatal("expected an error for a lone '|'")
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	_, err := New("a # b").Tokenize()
	if err == nil {
		t.Fatal("expected an error for '#'")
	}
	serr, ok := err.(*serrors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if serr.Code != "LEX-0001" {
		t.Errorf("expected LEX-0001, got %q", serr.Code)
	}
	if serr.Column != 3 {
		t.Errorf("expected column 3, got %d", serr.Column)
	}
}

func TestTokenPositions(t *testing.T) {
	input := "let x = 5\nx + 1"

	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"let", 1, 1},
		{"x", 1, 5},
		{"=", 1, 7},
		{"5", 1, 9},
		{"\n", 1, 10},
		{"x", 2, 1},
		{"+", 2, 3},
		{"1", 2, 5},
	}

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(tests))
	}
	for i, tt := range tests {
		if tokens[i].Literal != tt.literal {
			t.Fatalf("token %d: got literal %q, want %q", i, tokens[i].Literal, tt.literal)
		}
		if tokens[i].Line != tt.line || tokens[i].Column != tt.column {
			t.Errorf("token %q: got position %d:%d, want %d:%d",
				tt.literal, tokens[i].Line, tokens[i].Column, tt.line, tt.column)
		}
	}
}

func TestTokenizeExcludesEOF(t *testing.T) {
	tokens, err := New("1 + 2").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	for _, tok := range tokens {
		if tok.Type == EOF {
			t.Error("Tokenize must not include the EOF sentinel")
		}
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, err := New("").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("got %d tokens, want 0", len(tokens))
	}
}

func TestRoundTrip(t *testing.T) {
	// Concatenating lexemes with separators reproduces the source
	// shape: strings keep quotes, numbers keep their exact spelling.
	input := `x = "hi" + 3.14`
	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ""
	for i, tok := range tokens {
		if i > 0 {
			got += " "
		}
		got += tok.Literal
	}
	if got != input {
		t.Errorf("round trip failed: got %q, want %q", got, input)
	}
}

func TestNonASCIIDigitsRejected(t *testing.T) {
	// Unicode decimal digits reach the numeric recognizer but the
	// numeric grammar only admits ASCII, so they dead-end as malformed
	// numbers. The reported lexeme must not split multi-byte runes.
	_, err := New("٣٤٥٦٧٨٩٠١٢٣٤٥٦").Tokenize()
	if err == nil {
		t.Fatal("expected an error for non-ASCII digits")
	}
	serr, ok := err.(*serrors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if serr.Code != "LEX-0004" {
		t.Errorf("expected LEX-0004, got %q", serr.Code)
	}
	literal, _ := serr.Data["Literal"].(string)
	if !utf8.ValidString(literal) {
		t.Errorf("truncated literal splits a rune: %q", literal)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	// Re-lexing any token's lexeme in isolation reproduces a token of
	// the same type and value.
	input := "pi = 3.14 while (a-b <= .5e2) { xs@0 = \"ok\"; n.m() }\nlet"

	tokens, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tok := range tokens {
		relexed, err := New(tok.Literal).Tokenize()
		if err != nil {
			t.Fatalf("re-lexing %q failed: %v", tok.Literal, err)
		}
		if len(relexed) != 1 {
			t.Fatalf("re-lexing %q produced %d tokens, want 1", tok.Literal, len(relexed))
		}
		if relexed[0].Type != tok.Type || relexed[0].Literal != tok.Literal {
			t.Errorf("re-lexing %q: got {%q, %q}, want {%q, %q}",
				tok.Literal, relexed[0].Type, relexed[0].Literal, tok.Type, tok.Literal)
		}
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	tok, err := New("héllo").NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != IDENT || tok.Literal != "héllo" {
		t.Errorf("got {%q, %q}, want {IDENT, héllo}", tok.Type, tok.Literal)
	}
}

func TestLookupIdent(t *testing.T) {
	if got := LookupIdent(Keywords, "while"); got != WHILE {
		t.Errorf("LookupIdent(while) = %q, want WHILE", got)
	}
	if got := LookupIdent(Keywords, "While"); got != IDENT {
		t.Errorf("LookupIdent(While) = %q, want IDENT", got)
	}
	if got := LookupIdent(Keywords, "whale"); got != IDENT {
		t.Errorf("LookupIdent(whale) = %q, want IDENT", got)
	}
}
