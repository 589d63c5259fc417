package analysis

import (
	"github.com/zeu5/mdp-vi/policies"
	"github.com/zeu5/mdp-vi/types"
)

// Experiment pairs a scheduler with its configuration
type Experiment struct {
	Name      string
	config    *policies.Config
	scheduler policies.Scheduler
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, config *policies.Config, scheduler policies.Scheduler) *Experiment {
	return &Experiment{
		Name:      name,
		config:    config,
		scheduler: scheduler,
	}
}

// Run solves model and returns the result for the analyzers
func (e *Experiment) Run(model types.Model) (*types.Result, error) {
	agent, err := policies.NewAgent(model, e.config, e.scheduler)
	if err != nil {
		return nil, err
	}
	agent.Run()
	return &types.Result{
		Name:   e.Name,
		Model:  model,
		Policy: agent,
		Values: agent.Values(),
		Trace:  agent.Trace(),
		Steps:  agent.Steps(),
	}, nil
}
