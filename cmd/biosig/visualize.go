package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosig/biosig/pipeline"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Export plot data and quality summaries",
	Long: `Visualize recomputes the per-subject products in memory and writes plot
data to <preprocessed_root>/<subject>/plots: the EEG demo channel raw and
filtered, the envelope mean and standard deviation over trials, the IMU demo
axes and a YAML quality summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSteps(cmd.Context(), []pipeline.Step{pipeline.StepVisualize})
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)
}
