package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocem/cem"
	"github.com/samuelfneumann/gocem/initwfn"
	"gopkg.in/yaml.v3"
)

// networkConfig configures the architecture and optimization of the
// neural function approximator
type networkConfig struct {
	Hidden       []int           `yaml:"hidden"`
	LearningRate float64         `yaml:"learning_rate"`
	Init         initwfn.InitWFn `yaml:"init"`
}

// fileConfig is the root structure of a YAML run configuration file
type fileConfig struct {
	Train   cem.Config    `yaml:"train"`
	Network networkConfig `yaml:"network"`
}

// defaultFileConfig returns a fileConfig with default values
func defaultFileConfig() fileConfig {
	return fileConfig{
		Train: cem.NewConfig(),
		Network: networkConfig{
			Hidden:       []int{128},
			LearningRate: 0.01,
			Init:         initwfn.NewGlorotN(1.0),
		},
	}
}

// loadConfig reads a YAML run configuration file, filling unset fields
// with defaults
func loadConfig(path string) (fileConfig, error) {
	conf := defaultFileConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, errors.Wrap(err, "could not read config file")
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return fileConfig{}, errors.Wrap(err, "could not parse config file")
	}

	if len(conf.Network.Hidden) == 0 {
		conf.Network.Hidden = []int{128}
	}
	if conf.Network.LearningRate <= 0 {
		conf.Network.LearningRate = 0.01
	}
	if conf.Network.Init.Type == "" {
		conf.Network.Init = initwfn.NewGlorotN(1.0)
	}

	return conf, nil
}
