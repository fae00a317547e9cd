package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gocem",
	Short: "Cross-entropy method training for grid environments",
	Long: `gocem trains a discrete-action policy with the cross-entropy
method: each epoch samples a batch of episode rollouts, keeps the
trajectories above a reward percentile, and fits a neural function
approximator to imitate the actions taken in them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
