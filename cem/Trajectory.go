// Package cem implements the cross-entropy method for training
// discrete-action policies.
//
// Each training epoch rolls out a batch of full episodes under the
// current policy, keeps the trajectories whose episodic reward reaches
// a percentile threshold, and fits the policy's function approximator
// to imitate the actions taken in those elite trajectories.
package cem

import (
	"fmt"

	"github.com/samuelfneumann/gocem/agent"
	"github.com/samuelfneumann/gocem/environment"
	"gonum.org/v1/gonum/mat"
)

// Trajectory records one complete episode: the observation seen before
// each step, the action taken on it, and the total undiscounted
// episodic reward. Trajectories are immutable once returned by Rollout
// and live only within the epoch that produced them.
type Trajectory struct {
	Observations []mat.Vector
	Actions      []int
	Reward       float64
}

// Steps returns the number of steps taken in the Trajectory
func (t Trajectory) Steps() int {
	return len(t.Actions)
}

// Rollout drives one full episode of env under policy p and returns
// the completed Trajectory. The environment is reset first, stepped
// until it reports a last timestep, and closed on termination; the
// caller must pass a fresh environment instance for every rollout.
//
// Rollout never retries or times out: an environment that does not
// terminate blocks forever, which is accepted as part of the
// environment contract (finite-horizon episodes).
func Rollout(p agent.Policy,
	env environment.Environment) (Trajectory, error) {
	var traj Trajectory

	step := env.Reset()
	for !step.Last() {
		obs := step.Observation

		action, err := p.SelectAction(obs)
		if err != nil {
			env.Close()
			return Trajectory{}, fmt.Errorf("rollout: could not select "+
				"action: %v", err)
		}

		step, _ = env.Step(action)

		// The trajectory pairs each action with the observation it was
		// selected from, not the observation it produced
		traj.Observations = append(traj.Observations, obs)
		traj.Actions = append(traj.Actions, action)
		traj.Reward += step.Reward
	}

	if err := env.Close(); err != nil {
		return Trajectory{}, fmt.Errorf("rollout: could not close "+
			"environment: %v", err)
	}
	return traj, nil
}
