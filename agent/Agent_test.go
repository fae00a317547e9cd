package agent

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// fixedApproximator returns the same scores for every observation
type fixedApproximator struct {
	features int
	scores   []float64
	fitCalls int
	lastFit  FitConfig
}

func (f *fixedApproximator) Predict(obs []float64) ([]float64, error) {
	if len(obs) != f.features {
		return nil, fmt.Errorf("predict: invalid observation length"+
			"\n\twant(%d)\n\thave(%d)", f.features, len(obs))
	}
	return f.scores, nil
}

func (f *fixedApproximator) Fit(obs, targets []float32,
	config FitConfig) error {
	f.fitCalls++
	f.lastFit = config
	return nil
}

func (f *fixedApproximator) Features() int { return f.features }
func (f *fixedApproximator) Outputs() int  { return len(f.scores) }
func (f *fixedApproximator) Close() error  { return nil }

func TestCategoricalSelectActionInRange(t *testing.T) {
	approximator := &fixedApproximator{
		features: 2,
		scores:   []float64{0.2, 0.3, 0.5},
	}
	policy := NewCategorical(approximator, 42)
	obs := mat.NewVecDense(2, []float64{0, 1})

	for i := 0; i < 1000; i++ {
		action, err := policy.SelectAction(obs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action < 0 || action >= 3 {
			t.Fatalf("action = %d, expected [0, 3)", action)
		}
	}
}

func TestCategoricalSelectActionDeterministicScores(t *testing.T) {
	// With all weight on a single action, sampling must always return
	// that action. A weight of exactly zero is rejected, so the other
	// actions carry a negligible positive weight instead.
	approximator := &fixedApproximator{
		features: 1,
		scores:   []float64{1e-300, 1.0, 1e-300},
	}
	policy := NewCategorical(approximator, 14)
	obs := mat.NewVecDense(1, []float64{1})

	for i := 0; i < 100; i++ {
		action, err := policy.SelectAction(obs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if action != 1 {
			t.Fatalf("action = %d, expected 1", action)
		}
	}
}

func TestCategoricalSelectActionReproducible(t *testing.T) {
	approximator := &fixedApproximator{
		features: 1,
		scores:   []float64{0.25, 0.25, 0.25, 0.25},
	}
	obs := mat.NewVecDense(1, []float64{1})

	first := NewCategorical(approximator, 7)
	second := NewCategorical(approximator, 7)

	for i := 0; i < 100; i++ {
		a1, err := first.SelectAction(obs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a2, err := second.SelectAction(obs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a1 != a2 {
			t.Fatalf("sample %d differs under identical seeds: %d != %d", i,
				a1, a2)
		}
	}
}

func TestCategoricalSelectActionNonPositiveScore(t *testing.T) {
	for _, scores := range [][]float64{
		{0.5, 0.0, 0.5},
		{0.5, -0.1, 0.6},
	} {
		approximator := &fixedApproximator{features: 1, scores: scores}
		policy := NewCategorical(approximator, 42)
		obs := mat.NewVecDense(1, []float64{1})

		if _, err := policy.SelectAction(obs); err == nil {
			t.Errorf("expected error for scores %v", scores)
		}
	}
}

func TestCategoricalSelectActionObservationLength(t *testing.T) {
	approximator := &fixedApproximator{
		features: 2,
		scores:   []float64{0.5, 0.5},
	}
	policy := NewCategorical(approximator, 42)
	obs := mat.NewVecDense(3, []float64{0, 1, 0})

	if _, err := policy.SelectAction(obs); err == nil {
		t.Error("expected error for wrong observation length")
	}
}

func TestNewAgentRequiresApproximator(t *testing.T) {
	if _, err := New(nil, 42); err == nil {
		t.Error("expected error for nil approximator")
	}
}

func TestAgentLearnDelegates(t *testing.T) {
	approximator := &fixedApproximator{
		features: 2,
		scores:   []float64{0.5, 0.5},
	}
	a, err := New(approximator, 42)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}

	config := FitConfig{Epochs: 3, BatchSize: 2}
	obs := []float32{0, 1, 1, 0}
	targets := []float32{1, 0, 0, 1}
	if err := a.Learn(obs, targets, config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if approximator.fitCalls != 1 {
		t.Errorf("approximator was fit %d times, expected 1",
			approximator.fitCalls)
	}
	if approximator.lastFit != config {
		t.Errorf("fit config = %+v, expected %+v", approximator.lastFit,
			config)
	}

	if a.Features() != 2 {
		t.Errorf("Features() = %d, expected 2", a.Features())
	}
	if a.Outputs() != 2 {
		t.Errorf("Outputs() = %d, expected 2", a.Outputs())
	}
	if err := a.Close(); err != nil {
		t.Errorf("unexpected error on close: %v", err)
	}
}
