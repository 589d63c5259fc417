package policies

import "github.com/zeu5/mdp-vi/types"

// PredecessorMap records, for every state, the states that reach it with
// positive probability under some action.
// Only states that are someone's successor appear as keys
type PredecessorMap struct {
	nodes map[string]*predNode
}

type predNode struct {
	// in insertion order
	prev []types.State
	seen map[string]bool
}

func newPredNode() *predNode {
	return &predNode{
		prev: make([]types.State, 0),
		seen: make(map[string]bool),
	}
}

func (n *predNode) addPrev(s types.State) {
	key := s.Hash()
	if n.seen[key] {
		return
	}
	n.seen[key] = true
	n.prev = append(n.prev, s)
}

func NewPredecessorMap() *PredecessorMap {
	return &PredecessorMap{
		nodes: make(map[string]*predNode),
	}
}

// BuildPredecessorMap walks every non terminal state, legal action and
// positive probability transition of the model
func BuildPredecessorMap(model types.Model, backup *Backup) *PredecessorMap {
	p := NewPredecessorMap()
	for _, s := range model.States() {
		if backup.Terminal(s) {
			continue
		}
		for _, a := range model.Actions(s) {
			for _, t := range model.Transitions(s, a) {
				if t.Prob > 0 {
					p.Add(s, t.Next)
				}
			}
		}
	}
	return p
}

// Add records from as a predecessor of to
func (p *PredecessorMap) Add(from, to types.State) {
	toKey := to.Hash()
	if _, ok := p.nodes[toKey]; !ok {
		p.nodes[toKey] = newPredNode()
	}
	p.nodes[toKey].addPrev(from)
}

// Get returns the predecessors of state, empty if none were recorded.
// The returned slice must not be modified
func (p *PredecessorMap) Get(state types.State) []types.State {
	n, ok := p.nodes[state.Hash()]
	if !ok {
		return []types.State{}
	}
	return n.prev
}

func (p *PredecessorMap) Has(from, to types.State) bool {
	n, ok := p.nodes[to.Hash()]
	if !ok {
		return false
	}
	return n.seen[from.Hash()]
}

// Len is the number of states with at least one predecessor
func (p *PredecessorMap) Len() int {
	return len(p.nodes)
}
