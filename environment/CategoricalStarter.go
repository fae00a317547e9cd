package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states as one-hot vectors over a
// fixed number of cells, with the occupied cell sampled uniformly from
// a categorical distribution. It is used for environments whose states
// enumerate grid cells.
type CategoricalStarter struct {
	cells int
	seed  uint64
	rand  distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter sampling the
// starting cell from (0, 1, 2, ... cells-1)
func NewCategoricalStarter(cells int, seed uint64) CategoricalStarter {
	source := rand.NewSource(seed)

	weights := make([]float64, cells)
	for i := range weights {
		weights[i] = 1.0 / float64(cells)
	}

	return CategoricalStarter{cells, seed, distuv.NewCategorical(weights, source)}
}

// Start returns a starting state vector
func (c CategoricalStarter) Start() mat.Vector {
	start := mat.NewVecDense(c.cells, nil)
	start.SetVec(int(c.rand.Rand()), 1.0)
	return start
}
