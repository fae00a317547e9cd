package cem

import (
	"fmt"
)

// OneHot encodes a scalar action as a one-hot target distribution over
// actionDims actions: a vector of zeros with a 1 at index action.
//
// Target distributions have a fixed numeric type (float32, matching
// the compact representation training batches are held in) regardless
// of how actions themselves are represented.
func OneHot(action, actionDims int) ([]float32, error) {
	if actionDims <= 0 {
		return nil, fmt.Errorf("onehot: action dims must be positive, "+
			"got %d", actionDims)
	}
	if action < 0 || action >= actionDims {
		return nil, fmt.Errorf("onehot: action %d out of [0, %d)", action,
			actionDims)
	}

	target := make([]float32, actionDims)
	target[action] = 1.0
	return target, nil
}
