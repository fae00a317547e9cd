// Package agent implements agents that act in and learn from
// environments
package agent

// FitConfig configures a single fit call on an Approximator. None of
// the fields change what the approximator learns, only how the fit is
// batched and reported.
type FitConfig struct {
	// Epochs is the number of passes made over the training batch
	Epochs int

	// BatchSize is the number of samples per gradient step. A
	// non-positive BatchSize fits the whole batch at once.
	BatchSize int

	// Verbose prints the loss after each pass over the batch
	Verbose bool
}

// Approximator is a trainable function approximator mapping
// observation vectors to one score per action.
//
// Predict takes a single flattened observation of Features() values
// and returns Outputs() action scores. Fit performs supervised
// training of the approximator on a flattened batch of observations
// and target distributions, mutating the approximator's parameters;
// observations hold a multiple of Features() values and targets the
// matching multiple of Outputs() values. Training batches are held in
// float32.
type Approximator interface {
	Predict(obs []float64) ([]float64, error)
	Fit(obs, targets []float32, config FitConfig) error
	Features() int
	Outputs() int
	Close() error
}
