// Package nfa builds position (Glushkov) automata from pattern trees and
// evaluates them.
//
// Every byte-matching leaf of the tree is a position numbered 1..n from left
// to right; state 0 is the start state. Build produces the analysis
// automaton whose states correspond one to one with the tree's positions.
// BuildExact first unrolls counted repetitions so the automaton accepts
// exactly the pattern's language, which is what the matching engines need.
//
// Two evaluators live here: Evaluator, the reference matcher that works
// directly on the tree with position sets, and Simulator, a linear-time
// leftmost-longest simulation of an exact automaton.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrTooLarge indicates that unrolling counted repetitions would exceed
	// the position limit
	ErrTooLarge = errors.New("automaton too large")

	// ErrInvalidState indicates a state id outside the automaton
	ErrInvalidState = errors.New("invalid automaton state")
)

// BuildError reports why an exact automaton could not be built.
type BuildError struct {
	Message string
	Limit   int
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("automaton build error: %s (limit %d positions)", e.Message, e.Limit)
	}
	return fmt.Sprintf("automaton build error: %s", e.Message)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}
