package policies

import (
	"github.com/zeu5/mdp-vi/types"
	"github.com/zeu5/mdp-vi/util"
	"k8s.io/klog/v2"
)

// PrioritizedSweepingScheduler always backs up the queued state with the largest
// Bellman residual. After a backup, predecessors whose residual exceeds theta
// are (re)queued. Stops early when the queue is empty
type PrioritizedSweepingScheduler struct{}

var _ Scheduler = &PrioritizedSweepingScheduler{}

func PrioritizedSweeping() *PrioritizedSweepingScheduler {
	return &PrioritizedSweepingScheduler{}
}

func (p *PrioritizedSweepingScheduler) Name() string {
	return "PrioritizedSweeping"
}

func (p *PrioritizedSweepingScheduler) Validate(c *Config) error {
	return c.validateTheta()
}

func (p *PrioritizedSweepingScheduler) Run(r *RunState) int {
	pred := BuildPredecessorMap(r.Model, r.Backup)

	// hash -> state for popped keys
	index := make(map[string]types.State)
	queue := util.NewPriorityQueue()
	for _, s := range r.Model.States() {
		if r.Backup.Terminal(s) {
			continue
		}
		key := s.Hash()
		index[key] = s
		queue.Update(key, -r.Backup.Residual(s, r.Values))
	}
	klog.V(4).InfoS("Prioritized sweeping initialized", "queued", queue.Len(), "successors", pred.Len())

	step := 0
	for ; step < r.Config.Iterations; step++ {
		if queue.IsEmpty() {
			break
		}
		key, _ := queue.Pop()
		s := index[key]
		if !r.Backup.Terminal(s) {
			best, _ := r.Backup.BestValueAndAction(s, r.Values)
			r.Set(step, s, best)
		}

		for _, prev := range pred.Get(s) {
			if r.Backup.Terminal(prev) {
				continue
			}
			diff := r.Backup.Residual(prev, r.Values)
			if diff > r.Config.Theta {
				prevKey := prev.Hash()
				index[prevKey] = prev
				queue.Update(prevKey, -diff)
			}
		}
	}
	return step
}
