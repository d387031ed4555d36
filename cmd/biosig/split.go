package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosig/biosig/pipeline"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split raw recordings into per-device streams",
	Long: `Split parses every raw recording under <data_root>/<subject>/raw and
writes one CSV per stream (EEG_1, EMG_2, EMG_3, IMU_1, IMU_2, IMU_3) to
<structured_root>/<subject>/by_device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSteps(cmd.Context(), []pipeline.Step{pipeline.StepSplit})
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
