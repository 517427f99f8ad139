package condition

import (
	"errors"
	"fmt"
)

// ErrNoStateMatched is returned by Machine.MatchState when no state's
// predicate matches the document.
var ErrNoStateMatched = errors.New("condition: no state matched")

// ErrTooManyStatesMatched is returned by Machine.MatchState when more than
// one state's predicate matches the document — the states are meant to be
// mutually exclusive descriptions of document shape, so this indicates a
// malformed catalog.
var ErrTooManyStatesMatched = errors.New("condition: too many states matched")

// State is an id plus an optional predicate over the document. A nil Guard
// matches every document (used sparingly; the payment catalog gives every
// state a predicate).
type State struct {
	ID    string
	Guard Condition
}

// Matches reports whether the state's guard accepts doc. A state with no
// guard matches unconditionally.
func (s State) Matches(doc any) bool {
	if s.Guard == nil {
		return true
	}
	return s.Guard.Evaluate(doc)
}

// Equal compares states by id only, per spec.md §9 "states are value-equal
// by id" — callers must not rely on pointer/struct identity.
func (s State) Equal(other State) bool {
	return s.ID == other.ID
}

// Transition is a legal edge between two state ids, gated by an optional
// guard evaluated against the destination document.
type Transition struct {
	From  string
	To    string
	Guard Condition
}

// Machine holds a state catalog and its legal transitions, and derives the
// set of initial states (states that appear as a From but never as a To).
type Machine struct {
	States      []State
	Transitions []Transition

	byID    map[string]State
	initial map[string]bool
}

// NewMachine builds a Machine from a state catalog and transition table,
// pre-computing the id index and the initial-state set.
func NewMachine(states []State, transitions []Transition) *Machine {
	m := &Machine{
		States:      states,
		Transitions: transitions,
		byID:        make(map[string]State, len(states)),
		initial:     make(map[string]bool, len(states)),
	}
	for _, s := range states {
		m.byID[s.ID] = s
	}
	for _, t := range transitions {
		m.initial[t.From] = true
	}
	for _, t := range transitions {
		delete(m.initial, t.To)
	}
	return m
}

// MatchStates returns every state whose guard matches doc. Failure mode is
// an empty slice, never an error.
func (m *Machine) MatchStates(doc any) []State {
	var matched []State
	for _, s := range m.States {
		if s.Matches(doc) {
			matched = append(matched, s)
		}
	}
	return matched
}

// MatchState returns the single state matching doc, or an error if zero or
// more than one state matched. Callers rely on this being exact.
func (m *Machine) MatchState(doc any) (State, error) {
	matched := m.MatchStates(doc)
	switch len(matched) {
	case 0:
		return State{}, ErrNoStateMatched
	case 1:
		return matched[0], nil
	default:
		ids := make([]string, len(matched))
		for i, s := range matched {
			ids[i] = s.ID
		}
		return State{}, fmt.Errorf("%w: %v", ErrTooManyStatesMatched, ids)
	}
}

// IsInitial reports whether stateID is an initial state (appears as a From
// but never a To).
func (m *Machine) IsInitial(stateID string) bool {
	return m.initial[stateID]
}

// IsValidTransition reports whether there is a transition edge from -> to
// whose guard (if any) matches doc.
func (m *Machine) IsValidTransition(from, to string, doc any) bool {
	for _, t := range m.Transitions {
		if t.From != from || t.To != to {
			continue
		}
		if t.Guard == nil || t.Guard.Evaluate(doc) {
			return true
		}
	}
	return false
}

// State looks up a state by id.
func (m *Machine) State(id string) (State, bool) {
	s, ok := m.byID[id]
	return s, ok
}

// Explain returns a human-readable per-condition evaluation of doc against
// every state in the catalog, for diagnostics only.
func (m *Machine) Explain(doc any) string {
	out := ""
	for _, s := range m.States {
		out += fmt.Sprintf("[%s] matches=%v\n", s.ID, s.Matches(doc))
		if s.Guard != nil {
			out += s.Guard.Explain(doc) + "\n"
		}
	}
	return out
}
