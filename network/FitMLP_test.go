package network

import (
	"math"
	"testing"

	G "gorgonia.org/gorgonia"

	"github.com/samuelfneumann/gocem/agent"
)

// newTestMLP returns a small FitMLP with one hidden layer
func newTestMLP(t *testing.T, features, outputs int) *FitMLP {
	t.Helper()

	f, err := NewFitMLP(features, outputs, []int{8}, []bool{true},
		G.GlorotN(1.0), []*Activation{ReLU()}, 0.01)
	if err != nil {
		t.Fatalf("could not create network: %v", err)
	}
	return f
}

func TestFitMLPPredict(t *testing.T) {
	f := newTestMLP(t, 4, 3)
	defer f.Close()

	if f.Features() != 4 {
		t.Errorf("Features() = %d, expected 4", f.Features())
	}
	if f.Outputs() != 3 {
		t.Errorf("Outputs() = %d, expected 3", f.Outputs())
	}

	scores, err := f.Predict([]float64{0, 1, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, expected 3", len(scores))
	}

	// The output layer normalizes scores to a strictly positive
	// probability distribution
	sum := 0.0
	for i, score := range scores {
		if score <= 0 {
			t.Errorf("score %d = %v, expected strictly positive", i, score)
		}
		sum += score
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("scores sum to %v, expected 1", sum)
	}
}

func TestFitMLPPredictWrongLength(t *testing.T) {
	f := newTestMLP(t, 4, 3)
	defer f.Close()

	if _, err := f.Predict([]float64{0, 1}); err == nil {
		t.Error("expected error for wrong observation length")
	}
}

func TestFitMLPFit(t *testing.T) {
	f := newTestMLP(t, 2, 2)
	defer f.Close()

	// Two one-hot observations, each labelled with its own index
	obs := []float32{1, 0, 0, 1}
	targets := []float32{1, 0, 0, 1}

	config := agent.FitConfig{Epochs: 4, BatchSize: 0}
	if err := f.Fit(obs, targets, config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fitting must leave the prediction path usable and its outputs a
	// valid distribution
	scores, err := f.Predict([]float64{1, 0})
	if err != nil {
		t.Fatalf("unexpected error after fit: %v", err)
	}
	for i, score := range scores {
		if score <= 0 || math.IsNaN(score) {
			t.Errorf("score %d = %v after fit", i, score)
		}
	}
}

func TestFitMLPFitSmallBatches(t *testing.T) {
	f := newTestMLP(t, 2, 2)
	defer f.Close()

	// Three samples with a batch size of 2 forces a ragged final chunk
	obs := []float32{1, 0, 0, 1, 1, 0}
	targets := []float32{1, 0, 0, 1, 1, 0}

	config := agent.FitConfig{Epochs: 2, BatchSize: 2}
	if err := f.Fit(obs, targets, config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFitMLPFitValidation(t *testing.T) {
	f := newTestMLP(t, 2, 2)
	defer f.Close()

	config := agent.FitConfig{Epochs: 1}

	// Observation batch not a multiple of the feature count
	if err := f.Fit([]float32{1, 0, 1}, []float32{1, 0}, config); err == nil {
		t.Error("expected error for ragged observation batch")
	}

	// Mismatched sample counts between observations and targets
	err := f.Fit([]float32{1, 0, 0, 1}, []float32{1, 0}, config)
	if err == nil {
		t.Error("expected error for mismatched batch sizes")
	}

	// Empty batch
	if err := f.Fit(nil, nil, config); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestFitMLPClose(t *testing.T) {
	f := newTestMLP(t, 2, 2)

	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if _, err := f.Predict([]float64{1, 0}); err == nil {
		t.Error("expected error predicting on closed approximator")
	}
	if err := f.Fit([]float32{1, 0}, []float32{1, 0},
		agent.FitConfig{Epochs: 1}); err == nil {
		t.Error("expected error fitting on closed approximator")
	}
}

func TestNewMLPValidation(t *testing.T) {
	g := G.NewGraph()

	// Mismatched hidden layer parameter lengths
	_, err := NewMLP(4, 1, 3, g, []int{8, 8}, []bool{true},
		G.GlorotN(1.0), []*Activation{ReLU(), ReLU()})
	if err == nil {
		t.Error("expected error for mismatched biases length")
	}

	_, err = NewMLP(0, 1, 3, G.NewGraph(), nil, nil, G.GlorotN(1.0), nil)
	if err == nil {
		t.Error("expected error for non-positive features")
	}
}
