// Package envconfig provides configuration structs for constructing
// environments from string identifiers with default tasks and
// parameters.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/gocem/environment"
	"github.com/samuelfneumann/gocem/environment/gridworld"
	ts "github.com/samuelfneumann/gocem/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	// Gridworld8x8 is an 8x8 grid with a fixed start in the bottom-left
	// corner and a goal in the top-right corner
	Gridworld8x8 EnvName = "Gridworld8x8-v0"

	// Gridworld8x8Random is an 8x8 grid with a goal in the top-right
	// corner and a uniformly random starting cell
	Gridworld8x8Random EnvName = "Gridworld8x8Random-v0"
)

// DefaultEnvironment is the environment created when no identifier is
// given
const DefaultEnvironment = Gridworld8x8

// Default task parameters for the gridworld environments
const (
	defaultRows     = 8
	defaultCols     = 8
	defaultGoalX    = 7
	defaultGoalY    = 7
	defaultStepCost = -0.1
	defaultGoalGain = 1.0

	// Episodes are cut off after this many steps so that a policy
	// which never finds the goal still produces finite trajectories
	defaultCutoff = 200
)

// Config implements a specific configuration of a specific environment.
// Configs are YAML serializable so that they can be embedded in
// experiment configuration files.
type Config struct {
	Environment EnvName `yaml:"environment"`
}

// NewConfig returns a new environment Config. An empty name selects
// the default environment.
func NewConfig(envName EnvName) Config {
	if envName == "" {
		envName = DefaultEnvironment
	}
	return Config{Environment: envName}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. Each call constructs a fresh,
// independent environment instance.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	name := c.Environment
	if name == "" {
		name = DefaultEnvironment
	}

	switch name {
	case Gridworld8x8:
		starter, err := gridworld.NewSingleStart(0, 0, defaultRows,
			defaultCols)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
		}
		return createGridWorld(starter)

	case Gridworld8x8Random:
		starter := env.NewCategoricalStarter(defaultRows*defaultCols, seed)
		return createGridWorld(starter)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: no such environment %v",
		name)
}

// createGridWorld constructs the default 8x8 goal-reaching gridworld
// with the given start-state distribution
func createGridWorld(s env.Starter) (env.Environment, ts.TimeStep, error) {
	task, err := gridworld.NewGoal([]int{defaultGoalX}, []int{defaultGoalY},
		defaultRows, defaultCols, defaultStepCost, defaultGoalGain,
		defaultCutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: could not create "+
			"task: %v", err)
	}

	g, step, err := gridworld.New(defaultRows, defaultCols, task, s)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: could not create "+
			"gridworld: %v", err)
	}
	return g, step, nil
}
