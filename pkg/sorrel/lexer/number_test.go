package lexer

import (
	"testing"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/fsm"
)

func TestNumberMachine(t *testing.T) {
	tests := []struct {
		input      string
		recognized bool
		matched    string
		final      fsm.State
	}{
		// Integers
		{"0", true, "0", numInteger},
		{"42", true, "42", numInteger},
		{"42abc", true, "42", numInteger},

		// Fractionals
		{"3.14", true, "3.14", numFractional},
		{".5", true, ".5", numFractional},
		{"0.0", true, "0.0", numFractional},
		{"1.2.3", true, "1.2", numFractional},

		// Exponents
		{"2e10", true, "2e10", numExponent},
		{"2E10", true, "2E10", numExponent},
		{"1e-3", true, "1e-3", numExponent},
		{"1e+3", true, "1e+3", numExponent},
		{"6.02e23", true, "6.02e23", numExponent},

		// Greedy match backs off to the last accepting boundary.
		{"42.", true, "42", numInteger},
		{"1e", true, "1", numInteger},
		{"1e-", true, "1", numInteger},
		{"3.14e", true, "3.14", numFractional},

		// Never reaches an accepting state
		{".", false, "", numInitial},
		{".e5", false, "", numInitial},
		{"abc", false, "", numInitial},
		{"", false, "", numInitial},
	}

	for _, tt := range tests {
		result := NumberMachine.Run(tt.input)
		if result.Recognized != tt.recognized {
			t.Errorf("input %q: recognized = %v, want %v", tt.input, result.Recognized, tt.recognized)
			continue
		}
		if result.Matched != tt.matched {
			t.Errorf("input %q: matched = %q, want %q", tt.input, result.Matched, tt.matched)
		}
		if tt.recognized && result.Final != tt.final {
			t.Errorf("input %q: final state = %d, want %d", tt.input, result.Final, tt.final)
		}
	}
}
