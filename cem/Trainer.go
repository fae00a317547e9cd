package cem

import (
	"fmt"

	"github.com/samuelfneumann/gocem/agent"
	"github.com/samuelfneumann/gocem/environment/envconfig"
	"github.com/samuelfneumann/gocem/utils/floatutils"
	"github.com/samuelfneumann/gocem/utils/progressbar"
	"gonum.org/v1/gonum/stat"
)

// Defaults for the training Config
const (
	DefaultRollouts        = 70
	DefaultElitePercentile = 70.0
	DefaultEpochs          = 10
)

// Fixed fit configuration used for every learn call. The inner epoch
// count and batch size trade fit quality against wall-clock time per
// training epoch; they are not tuned per run.
var fitConfig = agent.FitConfig{Epochs: 8, BatchSize: 64}

// Config configures a training run. Configs are YAML serializable so
// that runs can be described by configuration files.
type Config struct {
	// Environment identifies the environment to train on. Empty
	// selects the default grid environment.
	Environment envconfig.EnvName `yaml:"environment"`

	// Rollouts is the number of episode rollouts per epoch
	Rollouts int `yaml:"rollouts"`

	// ElitePercentile is the reward percentile in [0, 100] that
	// trajectories must reach to be kept for fitting
	ElitePercentile float64 `yaml:"elite_percentile"`

	// Epochs is the number of training epochs. The loop always runs
	// exactly this many iterations; there is no early stopping.
	Epochs int `yaml:"epochs"`

	// Seed seeds environment construction
	Seed uint64 `yaml:"seed"`

	// ShowProgress draws a progress bar over each epoch's rollouts
	ShowProgress bool `yaml:"show_progress"`
}

// NewConfig returns a Config with default values
func NewConfig() Config {
	return Config{
		Environment:     envconfig.DefaultEnvironment,
		Rollouts:        DefaultRollouts,
		ElitePercentile: DefaultElitePercentile,
		Epochs:          DefaultEpochs,
	}
}

// Validate returns an error describing the first illegal field of the
// Config, if any. An Epochs of 0 is legal and trains nothing.
func (c Config) Validate() error {
	if c.Rollouts <= 0 {
		return fmt.Errorf("validate: rollouts must be positive, got %d",
			c.Rollouts)
	}
	if c.ElitePercentile < 0 || c.ElitePercentile > 100 {
		return fmt.Errorf("validate: elite percentile %v out of [0, 100]",
			c.ElitePercentile)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("validate: epochs must be non-negative, got %d",
			c.Epochs)
	}
	return nil
}

// EpochStats records the reward statistics of one training epoch: the
// mean reward over every trajectory rolled out in the epoch (not just
// the elites) and the elite reward threshold.
type EpochStats struct {
	Epoch          int
	MeanReward     float64
	EliteThreshold float64
}

// Trainer runs the cross-entropy method training loop: roll out
// episodes, select elite trajectories, encode their actions as target
// distributions, and fit the agent's approximator to them.
//
// Rollouts within an epoch run strictly sequentially against fresh
// environment instances, and the approximator is only mutated between
// epochs by the fit step.
type Trainer struct {
	conf    Config
	envConf envconfig.Config
	agent   *agent.Agent
}

// NewTrainer returns a new Trainer for the given agent and
// configuration. All configuration errors, including an action or
// observation dimension mismatch between the agent and the configured
// environment, are reported here, before any rollout begins.
func NewTrainer(a *agent.Agent, conf Config) (*Trainer, error) {
	if a == nil {
		return nil, fmt.Errorf("newtrainer: no agent given")
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("newtrainer: invalid configuration: %v", err)
	}

	envConf := envconfig.NewConfig(conf.Environment)

	// Discover the environment's static metadata once and check it
	// against the agent before training starts
	env, _, err := envConf.Create(conf.Seed)
	if err != nil {
		return nil, fmt.Errorf("newtrainer: could not create environment: %v",
			err)
	}
	actions := env.ActionSpec().NumActions()
	features := env.ObservationSpec().Shape.Len()
	if err := env.Close(); err != nil {
		return nil, fmt.Errorf("newtrainer: could not close environment: %v",
			err)
	}

	if a.Outputs() != actions {
		return nil, fmt.Errorf("newtrainer: agent action dims (%d) != "+
			"environment action dims (%d)", a.Outputs(), actions)
	}
	if a.Features() != features {
		return nil, fmt.Errorf("newtrainer: agent features (%d) != "+
			"environment observation length (%d)", a.Features(), features)
	}

	return &Trainer{
		conf:    conf,
		envConf: envConf,
		agent:   a,
	}, nil
}

// Train runs the training loop for exactly Config.Epochs epochs and
// returns the per-epoch reward statistics. A per-epoch summary line is
// printed as each epoch completes.
func (t *Trainer) Train() ([]EpochStats, error) {
	stats := make([]EpochStats, 0, t.conf.Epochs)

	for epoch := 0; epoch < t.conf.Epochs; epoch++ {
		trajectories, err := t.rolloutEpoch(epoch)
		if err != nil {
			return nil, fmt.Errorf("train: epoch %d: %v", epoch, err)
		}

		elites, err := SelectElites(trajectories, t.conf.ElitePercentile)
		if err != nil {
			return nil, fmt.Errorf("train: epoch %d: %v", epoch, err)
		}

		obs, targets, err := t.encode(elites)
		if err != nil {
			return nil, fmt.Errorf("train: epoch %d: %v", epoch, err)
		}

		if err := t.agent.Learn(obs, targets, fitConfig); err != nil {
			return nil, fmt.Errorf("train: epoch %d: could not fit "+
				"approximator: %v", epoch, err)
		}

		rewards := make([]float64, len(trajectories))
		for i, traj := range trajectories {
			rewards[i] = traj.Reward
		}

		epochStats := EpochStats{
			Epoch:          epoch,
			MeanReward:     stat.Mean(rewards, nil),
			EliteThreshold: elites.Threshold,
		}
		stats = append(stats, epochStats)

		fmt.Printf("epoch: %d  |  elite threshold: %.3f  |  mean reward: "+
			"%.3f\n", epoch, epochStats.EliteThreshold, epochStats.MeanReward)
	}

	return stats, nil
}

// rolloutEpoch runs one epoch's worth of independent episode rollouts,
// each against a fresh environment instance
func (t *Trainer) rolloutEpoch(epoch int) ([]Trajectory, error) {
	var pbar *progressbar.ProgressBar
	if t.conf.ShowProgress {
		pbar = progressbar.New(40, t.conf.Rollouts)
	}

	trajectories := make([]Trajectory, t.conf.Rollouts)
	for i := range trajectories {
		seed := t.conf.Seed + uint64(epoch*t.conf.Rollouts+i)
		env, _, err := t.envConf.Create(seed)
		if err != nil {
			return nil, fmt.Errorf("could not create environment: %v", err)
		}

		traj, err := Rollout(t.agent, env)
		if err != nil {
			return nil, err
		}
		trajectories[i] = traj

		if pbar != nil {
			pbar.Increment()
		}
	}

	if pbar != nil {
		pbar.Close()
	}
	return trajectories, nil
}

// encode flattens an EliteBatch into the compact float32 observation
// and one-hot target batches fed to the approximator's fit operation
func (t *Trainer) encode(elites EliteBatch) ([]float32, []float32, error) {
	features := t.agent.Features()
	outputs := t.agent.Outputs()

	obs := make([]float32, 0, elites.Steps()*features)
	targets := make([]float32, 0, elites.Steps()*outputs)

	for i, observation := range elites.Observations {
		if observation.Len() != features {
			return nil, nil, fmt.Errorf("encode: invalid observation "+
				"length\n\twant(%d)\n\thave(%d)", features, observation.Len())
		}

		flat := make([]float64, features)
		for j := range flat {
			flat[j] = observation.AtVec(j)
		}
		obs = append(obs, floatutils.ToFloat32(flat)...)

		target, err := OneHot(elites.Actions[i], outputs)
		if err != nil {
			return nil, nil, fmt.Errorf("encode: could not encode action: %v",
				err)
		}
		targets = append(targets, target...)
	}

	return obs, targets, nil
}
