package policies

import (
	"fmt"
	"math"

	"github.com/zeu5/mdp-vi/types"
)

// Backup computes Bellman backups of a model against a value store
type Backup struct {
	model    types.Model
	discount float64
}

func NewBackup(model types.Model, discount float64) *Backup {
	return &Backup{
		model:    model,
		discount: discount,
	}
}

// QValue is the expected discounted return of taking action in state and then
// collecting the values in the store. The action must be legal in state
func (b *Backup) QValue(state types.State, action types.Action, values *types.ValueStore) float64 {
	q := 0.0
	for _, t := range b.model.Transitions(state, action) {
		r := b.model.Reward(state, action, t.Next)
		q += t.Prob * (r + b.discount*values.Get(t.Next.Hash()))
	}
	return q
}

// BestValueAndAction returns the max Q value over the legal actions of state and
// the action achieving it. Ties go to the last action in Actions order.
// Panics if state has no actions
func (b *Backup) BestValueAndAction(state types.State, values *types.ValueStore) (float64, types.Action) {
	actions := b.model.Actions(state)
	if len(actions) == 0 {
		panic(fmt.Sprintf("policies: backup of state %s without actions", state.Hash()))
	}
	best := math.Inf(-1)
	var bestAction types.Action
	for _, a := range actions {
		q := b.QValue(state, a, values)
		if q >= best {
			best = q
			bestAction = a
		}
	}
	return best, bestAction
}

// Residual is |V(s) - max_a Q(s, a)|
func (b *Backup) Residual(state types.State, values *types.ValueStore) float64 {
	best, _ := b.BestValueAndAction(state, values)
	return math.Abs(values.Get(state.Hash()) - best)
}

// Terminal states are never backed up
func (b *Backup) Terminal(state types.State) bool {
	return b.model.IsTerminal(state) || len(b.model.Actions(state)) == 0
}
