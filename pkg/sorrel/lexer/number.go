package lexer

import "github.com/sorrel-lang/sorrel/pkg/sorrel/fsm"

// States of the numeric literal machine. The sub-grammar recognized is
//
//	integer    := digit+
//	fractional := integer? '.' digit+
//	exponent   := (integer | fractional) ('e'|'E') ('+'|'-')? digit+
//
// A trailing '.' without digits is not part of a number: the machine
// rolls back to the last accepting boundary, leaving the dot for the
// accessor recognizer.
const (
	numInitial fsm.State = iota
	numInteger
	numBeginFractional
	numFractional
	numBeginExponent
	numBeginSignedExponent
	numExponent
)

// NumberMachine recognizes the longest numeric literal prefix of its
// input. Exported so tooling and tests can exercise the sub-grammar
// directly; the machine is stateless and safe for concurrent use.
var NumberMachine = fsm.Machine{
	Initial: numInitial,
	Accepting: map[fsm.State]bool{
		numInteger:    true,
		numFractional: true,
		numExponent:   true,
	},
	Transition: numberTransition,
}

func numberTransition(s fsm.State, r rune) fsm.State {
	isDigit := r >= '0' && r <= '9'

	switch s {
	case numInitial:
		if isDigit {
			return numInteger
		}
		if r == '.' {
			return numBeginFractional
		}
	case numInteger:
		if isDigit {
			return numInteger
		}
		if r == '.' {
			return numBeginFractional
		}
		if r == 'e' || r == 'E' {
			return numBeginExponent
		}
	case numBeginFractional:
		if isDigit {
			return numFractional
		}
	case numFractional:
		if isDigit {
			return numFractional
		}
		if r == 'e' || r == 'E' {
			return numBeginExponent
		}
	case numBeginExponent:
		if isDigit {
			return numExponent
		}
		if r == '+' || r == '-' {
			return numBeginSignedExponent
		}
	case numBeginSignedExponent:
		if isDigit {
			return numExponent
		}
	case numExponent:
		if isDigit {
			return numExponent
		}
	}

	return fsm.NoState
}
