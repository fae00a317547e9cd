package cem

import (
	"fmt"
	"math"
	"testing"

	"github.com/samuelfneumann/gocem/environment/envconfig"
	"github.com/samuelfneumann/gocem/environment/gridworld"
	"gonum.org/v1/gonum/mat"
)

// scriptedPolicy replays a fixed action sequence
type scriptedPolicy struct {
	actions []int
	next    int
}

func (s *scriptedPolicy) SelectAction(obs mat.Vector) (int, error) {
	if s.next >= len(s.actions) {
		s.next = len(s.actions) - 1
	}
	action := s.actions[s.next]
	s.next++
	return action, nil
}

func TestRollout(t *testing.T) {
	env, _, err := envconfig.NewConfig(envconfig.Gridworld8x8).Create(0)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	// Walk from (0, 0) along the bottom row then up the right column
	// to the goal at (7, 7)
	var actions []int
	for i := 0; i < 7; i++ {
		actions = append(actions, gridworld.Right)
	}
	for i := 0; i < 7; i++ {
		actions = append(actions, gridworld.Up)
	}

	traj, err := Rollout(&scriptedPolicy{actions: actions}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if traj.Steps() != 14 {
		t.Fatalf("trajectory has %d steps, expected 14", traj.Steps())
	}
	for i, action := range traj.Actions {
		if action != actions[i] {
			t.Errorf("recorded action %d = %d, expected %d", i, action,
				actions[i])
		}
	}

	// 13 step costs of -0.1 plus the goal reward of 1.0
	if math.Abs(traj.Reward-(-0.3)) > 1e-9 {
		t.Errorf("trajectory reward = %v, expected -0.3", traj.Reward)
	}

	// Each observation is the state the action was selected from: the
	// first is the start cell and the second is one cell to the right
	if traj.Observations[0].AtVec(0) != 1.0 {
		t.Error("first observation should be hot at the start cell")
	}
	if traj.Observations[1].AtVec(1) != 1.0 {
		t.Error("second observation should be hot one cell to the right")
	}

	// Rollout closes the environment on termination
	if err := env.Close(); err == nil {
		t.Error("expected error closing the environment a second time")
	}
}

func TestRolloutClosesEnvOnPolicyError(t *testing.T) {
	env, _, err := envconfig.NewConfig(envconfig.Gridworld8x8).Create(0)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	_, rolloutErr := Rollout(failingPolicy{}, env)
	if rolloutErr == nil {
		t.Fatal("expected error from failing policy")
	}
	if err := env.Close(); err == nil {
		t.Error("environment should already be closed after a failed rollout")
	}
}

type failingPolicy struct{}

func (failingPolicy) SelectAction(obs mat.Vector) (int, error) {
	return 0, errPolicy
}

var errPolicy = fmt.Errorf("policy failure")
