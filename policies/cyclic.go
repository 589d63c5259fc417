package policies

// CyclicScheduler updates one state per step in place, cycling through the
// model's state enumeration. A terminal state still consumes its step
type CyclicScheduler struct{}

var _ Scheduler = &CyclicScheduler{}

func Cyclic() *CyclicScheduler {
	return &CyclicScheduler{}
}

func (c *CyclicScheduler) Name() string {
	return "Cyclic"
}

func (c *CyclicScheduler) Validate(_ *Config) error {
	return nil
}

func (c *CyclicScheduler) Run(r *RunState) int {
	states := r.Model.States()
	if len(states) == 0 {
		return 0
	}
	for i := 0; i < r.Config.Iterations; i++ {
		state := states[i%len(states)]
		if r.Backup.Terminal(state) {
			continue
		}
		best, _ := r.Backup.BestValueAndAction(state, r.Values)
		r.Set(i, state, best)
	}
	return r.Config.Iterations
}
