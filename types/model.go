package types

// State of the decision process. Identified by its Hash
type State interface {
	// Should be deterministic, two states are the same iff hashes are equal
	Hash() string
}

// Action that can be taken from a state
type Action interface {
	// Should be deterministic
	Hash() string
}

// Transition is one possible outcome of taking an action in a state
type Transition struct {
	Next State
	Prob float64
}

// Model of a finite MDP that is fully known to the solver.
//
// States must return the same enumeration order on every call within a run.
// Actions is empty iff the state is terminal. Transitions is only called with
// actions returned by Actions for the same state and its probabilities sum to 1.
type Model interface {
	States() []State
	Actions(State) []Action
	Transitions(State, Action) []Transition
	Reward(State, Action, State) float64
	IsTerminal(State) bool
}

// Policy is the read-only query surface of a solved model
type Policy interface {
	// Value of the state, 0 if it was never assigned
	Value(State) float64
	// QValue of taking the action in the state under the current values
	QValue(State, Action) float64
	// Policy returns the greedy action, false for terminal states
	Policy(State) (Action, bool)
	// Action is the same lookup as Policy
	Action(State) (Action, bool)
}
