// Package floatutils provides utilities for working with floats
package floatutils

import (
	"fmt"
	"math"
	"sort"
)

// Percentile returns the p'th percentile of values, with p in
// [0, 100], using linear interpolation between closest ranks.
//
// Quantile routines in numeric libraries differ in their interpolation
// rules, so the rule is pinned here: for n sorted values the percentile
// sits at rank p/100 * (n-1), and values at fractional ranks are
// linearly interpolated between the two surrounding order statistics.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("percentile: no values given")
	}
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percentile: p = %v out of [0, 100]", p)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower], nil
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight, nil
}

// ToFloat32 converts a slice of float64 to a slice of float32.
// Training batches are held in float32 to halve their memory cost.
func ToFloat32(values []float64) []float32 {
	converted := make([]float32, len(values))
	for i, v := range values {
		converted[i] = float32(v)
	}
	return converted
}

// ToFloat64 converts a slice of float32 to a slice of float64
func ToFloat64(values []float32) []float64 {
	converted := make([]float64, len(values))
	for i, v := range values {
		converted[i] = float64(v)
	}
	return converted
}
