package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosig/biosig/pipeline"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Filter split streams and compute EMG envelopes",
	Long: `Preprocess reads the split streams of every subject, applies the line
notch and band-pass filters with zero phase and computes the envelope of
the designated EMG channel. Outputs enabled by the save toggles are written
to <preprocessed_root>/<subject>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSteps(cmd.Context(), []pipeline.Step{pipeline.StepPreprocess})
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}
