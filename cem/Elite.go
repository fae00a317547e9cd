package cem

import (
	"fmt"

	"github.com/samuelfneumann/gocem/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// EliteBatch holds the flattened training data drawn from one epoch's
// elite trajectories: the concatenated per-step observations and
// actions of every kept trajectory, and the reward threshold that
// selected them.
type EliteBatch struct {
	Observations []mat.Vector
	Actions      []int
	Threshold    float64
}

// SelectElites computes the percentile reward threshold of the given
// trajectories and returns the batch built from every trajectory whose
// reward meets or exceeds it.
//
// The threshold is the interpolated percentile of the trajectory
// rewards (see floatutils.Percentile) with percentile in [0, 100].
// Inclusion is inclusive of the boundary: because the threshold is
// drawn from the same rewards it filters, at least one trajectory is
// always kept, and a population of identical rewards keeps every
// trajectory. Observations and actions are concatenated in the
// original trajectory order, preserving each trajectory's internal
// step order.
func SelectElites(trajectories []Trajectory,
	percentile float64) (EliteBatch, error) {
	if len(trajectories) == 0 {
		return EliteBatch{}, fmt.Errorf("selectelites: no trajectories given")
	}

	rewards := make([]float64, len(trajectories))
	for i, traj := range trajectories {
		rewards[i] = traj.Reward
	}

	threshold, err := floatutils.Percentile(rewards, percentile)
	if err != nil {
		return EliteBatch{}, fmt.Errorf("selectelites: could not compute "+
			"reward threshold: %v", err)
	}

	batch := EliteBatch{Threshold: threshold}
	for _, traj := range trajectories {
		if traj.Reward >= threshold {
			batch.Observations = append(batch.Observations,
				traj.Observations...)
			batch.Actions = append(batch.Actions, traj.Actions...)
		}
	}

	return batch, nil
}

// Steps returns the number of steps in the EliteBatch
func (e EliteBatch) Steps() int {
	return len(e.Actions)
}
