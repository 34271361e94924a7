// Package fsm implements a generic table-driven finite state machine
// used by the lexer to recognize lexical sub-grammars.
//
// The runner performs longest-prefix matching with backoff: it consumes
// input while a transition exists, remembers the last accepting state it
// visited, and on a dead end rolls back to that accepting boundary. It
// never consumes past the first unmatched character, so a caller can
// resume scanning immediately after the matched prefix.
package fsm

import "unicode/utf8"

// State identifies a machine state. Values are machine-specific.
type State int

// NoState is returned by a Transition function when no transition
// exists for a (state, rune) pair.
const NoState State = -1

// Machine describes a deterministic finite state machine.
// Transition must be a pure function: for every (state, rune) pair it
// returns exactly one next state, or NoState.
type Machine struct {
	Initial    State
	Accepting  map[State]bool
	Transition func(s State, r rune) State
}

// Result reports the outcome of a run.
type Result struct {
	Recognized bool   // whether an accepting state was ever reached
	Matched    string // longest prefix ending at the last accepting state
	Final      State  // the accepting state the match ended in
}

// Run matches the longest prefix of input accepted by the machine.
// If no accepting state is ever reached, Recognized is false, Matched
// is empty, and Final is the initial state.
func (m Machine) Run(input string) Result {
	state := m.Initial

	lastAccept := -1
	lastState := m.Initial
	if m.Accepting[state] {
		lastAccept = 0
		lastState = state
	}

	for i, r := range input {
		next := m.Transition(state, r)
		if next == NoState {
			break
		}
		state = next
		if m.Accepting[state] {
			// i is the byte offset of r; the accepted prefix
			// includes r itself.
			lastAccept = i + utf8.RuneLen(r)
			lastState = state
		}
	}

	if lastAccept < 0 {
		return Result{Final: m.Initial}
	}
	return Result{
		Recognized: true,
		Matched:    input[:lastAccept],
		Final:      lastState,
	}
}
