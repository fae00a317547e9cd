package agent

import (
	"fmt"
)

// Agent wraps a function approximator with a Policy for selecting
// actions. The Agent owns the approximator exclusively: its only
// mutable state is the approximator's parameters, which change through
// Learn.
type Agent struct {
	Policy
	approximator Approximator
}

// New returns a new Agent selecting actions with a Categorical policy
// over the approximator's scores, seeded with seed
func New(approximator Approximator, seed uint64) (*Agent, error) {
	if approximator == nil {
		return nil, fmt.Errorf("new: no approximator given")
	}

	return &Agent{
		Policy:       NewCategorical(approximator, seed),
		approximator: approximator,
	}, nil
}

// Learn fits the Agent's approximator to the given flattened
// observation batch and target distribution batch. The configuration
// is passed through to the approximator unchanged.
func (a *Agent) Learn(obs, targets []float32, config FitConfig) error {
	return a.approximator.Fit(obs, targets, config)
}

// Features returns the observation vector length the Agent expects
func (a *Agent) Features() int {
	return a.approximator.Features()
}

// Outputs returns the number of actions the Agent selects between
func (a *Agent) Outputs() int {
	return a.approximator.Outputs()
}

// Close releases the resources of the Agent's approximator
func (a *Agent) Close() error {
	return a.approximator.Close()
}
