package chars

import "testing"

func TestIdentifierChars(t *testing.T) {
	for _, r := range "abzAZ09_-$" {
		if !IsIdentifierChar(r) {
			t.Errorf("IsIdentifierChar(%q) = false", r)
		}
	}
	for _, r := range " .+(@\"\n" {
		if IsIdentifierChar(r) {
			t.Errorf("IsIdentifierChar(%q) = true", r)
		}
	}
	if IsLetterOrUnderscore('1') {
		t.Error("digits cannot start identifiers")
	}
	if !IsLetterOrUnderscore('_') || !IsLetterOrUnderscore('é') {
		t.Error("'_' and unicode letters can start identifiers")
	}
}

func TestWhitespace(t *testing.T) {
	for _, r := range " \t\r" {
		if !IsWhitespace(r) {
			t.Errorf("IsWhitespace(%q) = false", r)
		}
	}
	if IsWhitespace('\n') {
		t.Error("newline is significant, not whitespace")
	}
	if !IsNewline('\n') {
		t.Error("IsNewline('\\n') = false")
	}
}

func TestOperatorAndDelimiterChars(t *testing.T) {
	for _, r := range "+-*/%=<>!&|" {
		if !IsOperatorChar(r) {
			t.Errorf("IsOperatorChar(%q) = false", r)
		}
	}
	for _, r := range "(){}[],;:@" {
		if IsOperatorChar(r) {
			t.Errorf("IsOperatorChar(%q) = true", r)
		}
		if !IsDelimiter(r) {
			t.Errorf("IsDelimiter(%q) = false", r)
		}
	}
	// The dot belongs to the number-or-dot recognizer.
	if IsDelimiter('.') {
		t.Error("'.' must not be a plain delimiter")
	}
	if !IsStringDelimiter('"') || IsStringDelimiter('\'') {
		t.Error("only '\"' delimits strings")
	}
}
