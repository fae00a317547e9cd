package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocem/agent"
	"github.com/samuelfneumann/gocem/cem"
	"github.com/samuelfneumann/gocem/environment/envconfig"
	"github.com/samuelfneumann/gocem/network"
	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagEnv        string
	flagRollouts   int
	flagPercentile float64
	flagEpochs     int
	flagSeed       uint64
	flagProgress   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a policy with the cross-entropy method",
	RunE:  runTrain,
}

func init() {
	flags := trainCmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "path to a YAML run "+
		"configuration file")
	flags.StringVar(&flagEnv, "env",
		string(envconfig.DefaultEnvironment), "environment identifier")
	flags.IntVar(&flagRollouts, "rollouts", cem.DefaultRollouts,
		"episode rollouts per epoch")
	flags.Float64Var(&flagPercentile, "percentile",
		cem.DefaultElitePercentile, "elite reward percentile in [0, 100]")
	flags.IntVar(&flagEpochs, "epochs", cem.DefaultEpochs,
		"number of training epochs")
	flags.Uint64Var(&flagSeed, "seed", 0, "seed for environment "+
		"construction and action sampling")
	flags.BoolVar(&flagProgress, "progress", false, "draw a progress bar "+
		"over each epoch's rollouts")
}

func runTrain(cmd *cobra.Command, args []string) error {
	conf := defaultFileConfig()
	if flagConfig != "" {
		var err error
		if conf, err = loadConfig(flagConfig); err != nil {
			return err
		}
	}

	// Flags set on the command line override the configuration file
	flags := cmd.Flags()
	if flags.Changed("env") {
		conf.Train.Environment = envconfig.EnvName(flagEnv)
	}
	if flags.Changed("rollouts") {
		conf.Train.Rollouts = flagRollouts
	}
	if flags.Changed("percentile") {
		conf.Train.ElitePercentile = flagPercentile
	}
	if flags.Changed("epochs") {
		conf.Train.Epochs = flagEpochs
	}
	if flags.Changed("seed") {
		conf.Train.Seed = flagSeed
	}
	if flags.Changed("progress") {
		conf.Train.ShowProgress = flagProgress
	}

	// Discover the environment's dimensions to size the approximator
	envConf := envconfig.NewConfig(conf.Train.Environment)
	env, _, err := envConf.Create(conf.Train.Seed)
	if err != nil {
		return errors.Wrap(err, "could not create environment")
	}
	features := env.ObservationSpec().Shape.Len()
	actions := env.ActionSpec().NumActions()
	if err := env.Close(); err != nil {
		return errors.Wrap(err, "could not close environment")
	}

	hidden := conf.Network.Hidden
	biases := make([]bool, len(hidden))
	activations := make([]*network.Activation, len(hidden))
	for i := range hidden {
		biases[i] = true
		activations[i] = network.ReLU()
	}

	init, err := conf.Network.Init.Create()
	if err != nil {
		return errors.Wrap(err, "could not create weight initializer")
	}

	approximator, err := network.NewFitMLP(features, actions, hidden, biases,
		init, activations, conf.Network.LearningRate)
	if err != nil {
		return errors.Wrap(err, "could not create approximator")
	}

	a, err := agent.New(approximator, conf.Train.Seed)
	if err != nil {
		return errors.Wrap(err, "could not create agent")
	}
	defer a.Close()

	trainer, err := cem.NewTrainer(a, conf.Train)
	if err != nil {
		return errors.Wrap(err, "could not create trainer")
	}

	stats, err := trainer.Train()
	if err != nil {
		return errors.Wrap(err, "training failed")
	}

	if len(stats) > 0 {
		last := stats[len(stats)-1]
		fmt.Printf("final mean reward after %d epochs: %.3f\n", len(stats),
			last.MeanReward)
	}
	return nil
}
