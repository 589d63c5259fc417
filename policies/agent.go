package policies

import (
	"fmt"

	"github.com/zeu5/mdp-vi/types"
	"k8s.io/klog/v2"
)

// Scheduler decides the order in which states are backed up
type Scheduler interface {
	Name() string
	// Validate checks scheduler specific configuration
	Validate(*Config) error
	// Run executes the schedule over r and returns the number of steps taken
	Run(r *RunState) int
}

// RunState is what a scheduler mutates during a run
type RunState struct {
	Model  types.Model
	Backup *Backup
	Config *Config
	// Values may be replaced wholesale by the scheduler
	Values *types.ValueStore
	// nil unless Config.RecordTrace is set
	Trace *types.Trace
}

// Set assigns val to state in the current store and records the change
func (r *RunState) Set(step int, state types.State, val float64) {
	key := state.Hash()
	r.record(step, key, r.Values.Get(key), val)
	r.Values.Set(key, val)
}

func (r *RunState) record(step int, key string, oldVal, newVal float64) {
	if r.Trace != nil {
		r.Trace.Append(step, key, oldVal, newVal)
	}
	klog.V(5).InfoS("Backed up state", "step", step, "state", key, "old", oldVal, "new", newVal)
}

// Agent solves a model with a scheduler and answers value and policy queries
// against the resulting store
type Agent struct {
	model     types.Model
	config    *Config
	scheduler Scheduler
	backup    *Backup
	run       *RunState
	steps     int
}

var _ types.Policy = &Agent{}

// NewAgent validates the configuration, the agent starts with an empty store.
// A nil config uses DefaultConfig
func NewAgent(model types.Model, config *Config, scheduler Scheduler) (*Agent, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := scheduler.Validate(config); err != nil {
		return nil, fmt.Errorf("scheduler %s: %w", scheduler.Name(), err)
	}
	backup := NewBackup(model, config.Discount)
	return &Agent{
		model:     model,
		config:    config,
		scheduler: scheduler,
		backup:    backup,
		run:       newRunState(model, backup, config),
	}, nil
}

func newRunState(model types.Model, backup *Backup, config *Config) *RunState {
	r := &RunState{
		Model:  model,
		Backup: backup,
		Config: config,
		Values: types.NewValueStore(),
	}
	if config.RecordTrace {
		r.Trace = types.NewTrace()
	}
	return r
}

// Run executes the schedule from a fresh store
func (a *Agent) Run() {
	a.run = newRunState(a.model, a.backup, a.config)
	a.steps = a.scheduler.Run(a.run)
	klog.V(2).InfoS("Value iteration finished",
		"scheduler", a.scheduler.Name(),
		"steps", a.steps,
		"iterations", a.config.Iterations,
		"assigned", a.run.Values.Len(),
	)
}

func (a *Agent) Name() string {
	return a.scheduler.Name()
}

// Steps executed by the last Run
func (a *Agent) Steps() int {
	return a.steps
}

// Values returns a copy of the current store
func (a *Agent) Values() *types.ValueStore {
	return a.run.Values.Clone()
}

// Trace of the last Run, nil if tracing is disabled
func (a *Agent) Trace() *types.Trace {
	return a.run.Trace
}

func (a *Agent) Model() types.Model {
	return a.model
}

func (a *Agent) Value(state types.State) float64 {
	return a.run.Values.Get(state.Hash())
}

func (a *Agent) QValue(state types.State, action types.Action) float64 {
	return a.backup.QValue(state, action, a.run.Values)
}

func (a *Agent) Policy(state types.State) (types.Action, bool) {
	if a.backup.Terminal(state) {
		return nil, false
	}
	_, action := a.backup.BestValueAndAction(state, a.run.Values)
	return action, true
}

func (a *Agent) Action(state types.State) (types.Action, bool) {
	return a.Policy(state)
}

// NewValueIterationAgent runs synchronous value iteration for the given number of sweeps
func NewValueIterationAgent(model types.Model, discount float64, iterations int) (*Agent, error) {
	return newAndRun(model, &Config{Discount: discount, Iterations: iterations, Theta: DefaultTheta}, Synchronous())
}

// NewAsynchronousValueIterationAgent runs the given number of cyclic single state updates
func NewAsynchronousValueIterationAgent(model types.Model, discount float64, iterations int) (*Agent, error) {
	return newAndRun(model, &Config{Discount: discount, Iterations: iterations, Theta: DefaultTheta}, Cyclic())
}

// NewPrioritizedSweepingAgent runs up to iterations prioritized updates
func NewPrioritizedSweepingAgent(model types.Model, discount float64, iterations int, theta float64) (*Agent, error) {
	return newAndRun(model, &Config{Discount: discount, Iterations: iterations, Theta: theta}, PrioritizedSweeping())
}

func newAndRun(model types.Model, config *Config, scheduler Scheduler) (*Agent, error) {
	agent, err := NewAgent(model, config, scheduler)
	if err != nil {
		return nil, err
	}
	agent.Run()
	return agent, nil
}
