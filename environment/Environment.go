// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/gocem/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Task implements the reward scheme for taking actions in some
// environment and decides when an episode is over
type Task interface {
	// GetReward returns the reward for taking action a on timestep t
	GetReward(t timestep.TimeStep, a int) float64

	// AtGoal returns whether state is a goal state
	AtGoal(state mat.Vector) bool

	// Done returns whether the episode should end on the given
	// timestep, either because a goal state was reached or because
	// the task's step cutoff was hit
	Done(t timestep.TimeStep) bool
}

// Environment implements a simulated environment, which includes a Task
// to complete.
//
// Actions are scalar integers in [0, N) for an environment with N
// discrete actions. Episodes start with Reset and end when Step returns
// a last timestep. Close releases any resources the environment holds
// and must be called exactly once, after which the environment may not
// be stepped.
type Environment interface {
	Task
	Starter

	Reset() timestep.TimeStep // Resets between episodes
	Step(action int) (timestep.TimeStep, bool)
	Close() error

	ObservationSpec() Spec
	ActionSpec() Spec
}
