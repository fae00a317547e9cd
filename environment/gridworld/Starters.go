package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gocem/environment"
	"gonum.org/v1/gonum/mat"
)

// SingleStart deterministically starts every episode at a single fixed
// grid cell
type SingleStart struct {
	state mat.Vector
}

// NewSingleStart returns a Starter that always starts episodes at
// position (x, y) of an (r, c) grid
func NewSingleStart(x, y, r, c int) (environment.Starter, error) {
	if x < 0 || x >= c {
		return nil, fmt.Errorf("newSingleStart: x = %d out of [0, %d)", x, c)
	}
	if y < 0 || y >= r {
		return nil, fmt.Errorf("newSingleStart: y = %d out of [0, %d)", y, r)
	}

	return &SingleStart{cToV(x, y, r, c)}, nil
}

// Start returns the starting state vector
func (s *SingleStart) Start() mat.Vector {
	return s.state
}
