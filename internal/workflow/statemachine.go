// Package workflow holds the integrity rules that keep the learning loop
// consistent: the status state machine, the typed guard errors, and the
// transition tables for ideas and experiments.
package workflow

// StateMachine validates status transitions against a fixed transition
// table. The table maps each state to the set of states directly reachable
// from it; a state with no entry (or an empty entry) is terminal. The table
// is configuration, never mutated after construction.
type StateMachine[S ~string] struct {
	transitions map[S][]S
}

func NewStateMachine[S ~string](transitions map[S][]S) *StateMachine[S] {
	return &StateMachine[S]{transitions: transitions}
}

// CanTransition reports whether from -> to is a legal edge. Unknown states
// and disallowed targets both return false, not an error.
func (sm *StateMachine[S]) CanTransition(from, to S) bool {
	for _, allowed := range sm.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the successor set for from. Empty for terminal
// or unknown states.
func (sm *StateMachine[S]) AllowedTransitions(from S) []S {
	allowed := sm.transitions[from]
	out := make([]S, len(allowed))
	copy(out, allowed)
	return out
}

// Transition returns to when the edge is legal and an InvalidTransitionError
// carrying both labels when it is not.
func (sm *StateMachine[S]) Transition(from, to S) (S, error) {
	if !sm.CanTransition(from, to) {
		return from, &InvalidTransitionError{From: string(from), To: string(to)}
	}
	return to, nil
}
