package agent

import (
	"gonum.org/v1/gonum/mat"
)

// Policy represents one way of selecting actions from observations.
//
// Policies are a closed set of strategies held by an Agent by
// reference; new ways of selecting actions are additional Policy
// implementations, not modifications to the Agent.
type Policy interface {
	// SelectAction selects a single scalar action in
	// [0, action count) for the given observation
	SelectAction(obs mat.Vector) (int, error)
}

// vecData returns the backing data of an observation vector,
// flattening it to a plain []float64
func vecData(obs mat.Vector) []float64 {
	if v, ok := obs.(*mat.VecDense); ok && v.RawVector().Inc == 1 {
		return v.RawVector().Data
	}

	data := make([]float64, obs.Len())
	for i := range data {
		data[i] = obs.AtVec(i)
	}
	return data
}
