package network

import (
	"fmt"

	"github.com/samuelfneumann/gocem/agent"
	"github.com/samuelfneumann/gocem/utils/floatutils"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// FitMLP is a trainable MLP function approximator. It holds a batch-1
// prediction network for scoring single observations and lazily
// constructs training replicas of the network for whatever batch sizes
// fit calls require. Training minimizes the cross-entropy between the
// network's softmax outputs and the supplied target distributions.
//
// Prediction and training networks live on separate computational
// graphs with copied weights, so weights are synced into the training
// replica before every gradient step and synced back afterwards.
type FitMLP struct {
	net NeuralNet
	vm  G.VM

	learningRate float64

	// Training replicas keyed by batch size. Fit batch sizes vary
	// between calls, so replicas are cached rather than rebuilt.
	trainers map[int]*fitGraph

	closed bool
}

// fitGraph packages a training replica of the prediction network with
// its loss, solver, and VM
type fitGraph struct {
	net     NeuralNet
	targets *G.Node
	loss    G.Value
	vm      G.VM
	solver  G.Solver
}

// NewFitMLP returns a new FitMLP approximating a function from
// features input values to outputs strictly positive action scores.
// See NewMLP for the hiddenSizes, biases, init, and activations
// parameters.
func NewFitMLP(features, outputs int, hiddenSizes []int, biases []bool,
	init G.InitWFn, activations []*Activation,
	learningRate float64) (*FitMLP, error) {
	if learningRate <= 0 {
		return nil, fmt.Errorf("newfitmlp: learning rate must be positive, "+
			"got %v", learningRate)
	}

	g := G.NewGraph()
	net, err := NewMLP(features, 1, outputs, g, hiddenSizes, biases, init,
		activations)
	if err != nil {
		return nil, fmt.Errorf("newfitmlp: could not create network: %v", err)
	}

	return &FitMLP{
		net:          net,
		vm:           G.NewTapeMachine(g),
		learningRate: learningRate,
		trainers:     make(map[int]*fitGraph),
	}, nil
}

// Predict returns the network's scores for a single flattened
// observation of Features() values
func (f *FitMLP) Predict(obs []float64) ([]float64, error) {
	if f.closed {
		return nil, fmt.Errorf("predict: predict on closed approximator")
	}

	if err := f.net.SetInput(obs); err != nil {
		return nil, fmt.Errorf("predict: could not set input: %v", err)
	}
	if err := f.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: could not run forward pass: %v", err)
	}

	// The VM reuses output storage between runs, so copy the scores
	// out before resetting
	out := f.net.Output().Data().([]float64)
	scores := make([]float64, len(out))
	copy(scores, out)

	f.vm.Reset()
	return scores, nil
}

// Fit performs supervised training of the network on a flattened batch
// of observations and target distributions. The batch is split into
// config.BatchSize chunks (a non-positive BatchSize fits the whole
// batch at once) and config.Epochs passes are made over it.
func (f *FitMLP) Fit(obs, targets []float32, config agent.FitConfig) error {
	if f.closed {
		return fmt.Errorf("fit: fit on closed approximator")
	}

	features := f.net.Features()
	outputs := f.net.Outputs()

	if len(obs) == 0 || len(obs)%features != 0 {
		return fmt.Errorf("fit: invalid observation batch length %d for %d "+
			"features", len(obs), features)
	}
	samples := len(obs) / features
	if len(targets) != samples*outputs {
		return fmt.Errorf("fit: invalid target batch length\n\twant(%d)"+
			"\n\thave(%d)", samples*outputs, len(targets))
	}

	batchSize := config.BatchSize
	if batchSize <= 0 || batchSize > samples {
		batchSize = samples
	}
	epochs := config.Epochs
	if epochs <= 0 {
		epochs = 1
	}

	obs64 := floatutils.ToFloat64(obs)
	targets64 := floatutils.ToFloat64(targets)

	for epoch := 0; epoch < epochs; epoch++ {
		var totalLoss float64

		for start := 0; start < samples; start += batchSize {
			chunk := batchSize
			if start+chunk > samples {
				chunk = samples - start
			}

			loss, err := f.fitChunk(
				obs64[start*features:(start+chunk)*features],
				targets64[start*outputs:(start+chunk)*outputs],
				chunk,
			)
			if err != nil {
				return fmt.Errorf("fit: %v", err)
			}
			totalLoss += loss * float64(chunk)
		}

		if config.Verbose {
			fmt.Printf("fit epoch: %d  |  loss: %f\n", epoch,
				totalLoss/float64(samples))
		}
	}

	return nil
}

// fitChunk runs a single gradient step on one chunk of the training
// batch and returns the chunk's loss
func (f *FitMLP) fitChunk(obs, targets []float64, chunk int) (float64,
	error) {
	trainer, err := f.trainerFor(chunk)
	if err != nil {
		return 0, err
	}

	// Sync the current weights into the training replica
	if err := trainer.net.Set(f.net); err != nil {
		return 0, fmt.Errorf("could not sync weights into trainer: %v", err)
	}

	if err := trainer.net.SetInput(obs); err != nil {
		return 0, fmt.Errorf("could not set training input: %v", err)
	}

	targetTensor := tensor.New(
		tensor.WithBacking(targets),
		tensor.WithShape(chunk, f.net.Outputs()),
	)
	if err := G.Let(trainer.targets, targetTensor); err != nil {
		return 0, fmt.Errorf("could not set training targets: %v", err)
	}

	if err := trainer.vm.RunAll(); err != nil {
		return 0, fmt.Errorf("could not run training step: %v", err)
	}
	if err := trainer.solver.Step(trainer.net.Model()); err != nil {
		return 0, fmt.Errorf("could not step solver: %v", err)
	}
	loss := trainer.loss.Data().(float64)
	trainer.vm.Reset()

	// Sync the adapted weights back into the prediction network
	if err := f.net.Set(trainer.net); err != nil {
		return 0, fmt.Errorf("could not sync weights out of trainer: %v", err)
	}

	return loss, nil
}

// trainerFor returns the training replica for the given batch size,
// constructing and caching it on first use
func (f *FitMLP) trainerFor(batch int) (*fitGraph, error) {
	if trainer, ok := f.trainers[batch]; ok {
		return trainer, nil
	}

	net, err := f.net.CloneWithBatch(batch)
	if err != nil {
		return nil, fmt.Errorf("could not clone training network: %v", err)
	}
	g := net.Graph()

	targets := G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, f.net.Outputs()), G.WithName("targets"))

	// Cross-entropy between the target distributions and the softmax
	// scores: -mean(sum(targets * log(scores), 1)). The softmax output
	// layer guarantees the scores fed to the logarithm are positive.
	logScores := G.Must(G.Log(net.Prediction()))
	ce := G.Must(G.HadamardProd(targets, logScores))
	ce = G.Must(G.Sum(ce, 1))
	cost := G.Must(G.Neg(G.Must(G.Mean(ce))))

	trainer := &fitGraph{
		net:     net,
		targets: targets,
		solver:  G.NewAdamSolver(G.WithLearnRate(f.learningRate)),
	}
	G.Read(cost, &trainer.loss)

	if _, err := G.Grad(cost, net.Learnables()...); err != nil {
		return nil, fmt.Errorf("could not compute gradient: %v", err)
	}
	trainer.vm = G.NewTapeMachine(g, G.BindDualValues(net.Learnables()...))

	f.trainers[batch] = trainer
	return trainer, nil
}

// Features returns the observation vector length the network expects
func (f *FitMLP) Features() int {
	return f.net.Features()
}

// Outputs returns the number of action scores the network predicts
func (f *FitMLP) Outputs() int {
	return f.net.Outputs()
}

// Close releases the VMs of the prediction network and all cached
// training replicas. The FitMLP may not be used after Close.
func (f *FitMLP) Close() error {
	if f.closed {
		return fmt.Errorf("close: close on closed approximator")
	}
	f.closed = true

	err := f.vm.Close()
	for _, trainer := range f.trainers {
		if closeErr := trainer.vm.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
