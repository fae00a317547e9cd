package agent

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Categorical is a Policy that treats an Approximator's scores as the
// unnormalized weights of a categorical distribution over actions and
// samples a single action from it.
//
// The random source is injected at construction so that action
// sampling is reproducible under a fixed seed.
type Categorical struct {
	approximator Approximator
	source       rand.Source
	seed         uint64
}

// NewCategorical returns a new Categorical policy sampling actions
// with the given seed
func NewCategorical(approximator Approximator, seed uint64) *Categorical {
	return &Categorical{
		approximator: approximator,
		source:       rand.NewSource(seed),
		seed:         seed,
	}
}

// SelectAction samples one action from the categorical distribution
// induced by the approximator's scores for obs.
//
// Every score must be strictly positive: a zero or negative score has
// no defined log probability, so a malformed approximator is surfaced
// as an error rather than silently clamped.
func (c *Categorical) SelectAction(obs mat.Vector) (int, error) {
	if obs.Len() != c.approximator.Features() {
		return 0, fmt.Errorf("selectaction: invalid observation length"+
			"\n\twant(%d)\n\thave(%d)", c.approximator.Features(), obs.Len())
	}

	scores, err := c.approximator.Predict(vecData(obs))
	if err != nil {
		return 0, fmt.Errorf("selectaction: could not predict action "+
			"scores: %v", err)
	}

	for i, score := range scores {
		if !(score > 0) {
			return 0, fmt.Errorf("selectaction: non-positive score %v for "+
				"action %d: categorical distribution is undefined", score, i)
		}
	}

	dist := distuv.NewCategorical(scores, c.source)
	return int(dist.Rand()), nil
}
