package policies

import "github.com/zeu5/mdp-vi/types"

// SynchronousScheduler performs batch sweeps. Every sweep reads only the
// previous sweep's store and writes into a new one
type SynchronousScheduler struct{}

var _ Scheduler = &SynchronousScheduler{}

func Synchronous() *SynchronousScheduler {
	return &SynchronousScheduler{}
}

func (s *SynchronousScheduler) Name() string {
	return "Synchronous"
}

func (s *SynchronousScheduler) Validate(_ *Config) error {
	return nil
}

func (s *SynchronousScheduler) Run(r *RunState) int {
	states := r.Model.States()
	for sweep := 0; sweep < r.Config.Iterations; sweep++ {
		prev := r.Values
		next := types.NewValueStore()
		for _, state := range states {
			if r.Backup.Terminal(state) {
				continue
			}
			best, _ := r.Backup.BestValueAndAction(state, prev)
			key := state.Hash()
			next.Set(key, best)
			r.record(sweep, key, prev.Get(key), best)
		}
		r.Values = next
	}
	return r.Config.Iterations
}
