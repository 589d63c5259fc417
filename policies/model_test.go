package policies

import "github.com/zeu5/mdp-vi/types"

type testState string

func (s testState) Hash() string { return string(s) }

type testAction string

func (a testAction) Hash() string { return string(a) }

// tableModel is a model defined by explicit tables
type tableModel struct {
	states      []types.State
	terminal    map[string]bool
	actions     map[string][]types.Action
	transitions map[string][]types.Transition
	rewards     map[string]float64
}

var _ types.Model = &tableModel{}

func newTableModel() *tableModel {
	return &tableModel{
		states:      make([]types.State, 0),
		terminal:    make(map[string]bool),
		actions:     make(map[string][]types.Action),
		transitions: make(map[string][]types.Transition),
		rewards:     make(map[string]float64),
	}
}

func (m *tableModel) addState(s string, terminal bool) *tableModel {
	m.states = append(m.states, testState(s))
	m.terminal[s] = terminal
	return m
}

// addTransition registers action a at s (once) and one of its outcomes
func (m *tableModel) addTransition(s, a, next string, prob, reward float64) *tableModel {
	key := s + "|" + a
	if _, ok := m.transitions[key]; !ok {
		m.actions[s] = append(m.actions[s], testAction(a))
	}
	m.transitions[key] = append(m.transitions[key], types.Transition{Next: testState(next), Prob: prob})
	m.rewards[key+"|"+next] = reward
	return m
}

func (m *tableModel) States() []types.State {
	return m.states
}

func (m *tableModel) Actions(s types.State) []types.Action {
	return m.actions[s.Hash()]
}

func (m *tableModel) Transitions(s types.State, a types.Action) []types.Transition {
	return m.transitions[s.Hash()+"|"+a.Hash()]
}

func (m *tableModel) Reward(s types.State, a types.Action, next types.State) float64 {
	return m.rewards[s.Hash()+"|"+a.Hash()+"|"+next.Hash()]
}

func (m *tableModel) IsTerminal(s types.State) bool {
	return m.terminal[s.Hash()]
}

// chainModel is S0 -> S1 -> S2 (terminal) with reward 10 on the last step.
// S0 can also stay in place
func chainModel() *tableModel {
	return newTableModel().
		addState("S0", false).
		addState("S1", false).
		addState("S2", true).
		addTransition("S0", "go", "S1", 1, 0).
		addTransition("S0", "stay", "S0", 1, 0).
		addTransition("S1", "go", "S2", 1, 10)
}
