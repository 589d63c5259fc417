package policies

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTheta is the residual below which prioritized sweeping does not requeue a state
const DefaultTheta = 1e-5

var (
	ErrNilModel          = errors.New("model is nil")
	ErrNilScheduler      = errors.New("scheduler is nil")
	ErrInvalidDiscount   = errors.New("discount must be finite and non-negative")
	ErrInvalidIterations = errors.New("iterations must be non-negative")
	ErrInvalidTheta      = errors.New("theta must be finite and positive")
)

type Config struct {
	// Discount factor applied to the value of the next state
	Discount float64
	// Number of update steps, the meaning of a step depends on the scheduler
	Iterations int
	// Only used by prioritized sweeping
	Theta float64
	// Record every value change in a Trace
	RecordTrace bool
}

func DefaultConfig() *Config {
	return &Config{
		Discount:   0.9,
		Iterations: 100,
		Theta:      DefaultTheta,
	}
}

// Validate checks the fields shared by all schedulers
func (c *Config) Validate() error {
	if math.IsNaN(c.Discount) || math.IsInf(c.Discount, 0) || c.Discount < 0 {
		return fmt.Errorf("invalid config (discount %v): %w", c.Discount, ErrInvalidDiscount)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("invalid config (iterations %d): %w", c.Iterations, ErrInvalidIterations)
	}
	return nil
}

func (c *Config) validateTheta() error {
	if math.IsNaN(c.Theta) || math.IsInf(c.Theta, 0) || c.Theta <= 0 {
		return fmt.Errorf("invalid config (theta %v): %w", c.Theta, ErrInvalidTheta)
	}
	return nil
}
