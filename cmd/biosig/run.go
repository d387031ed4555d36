package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosig/biosig/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a selection of steps for every subject",
	Long: `Run executes the selected steps for every subject under the data root.
Steps are given as a comma-separated list: 1 split, 2 preprocess,
3 visualize, 0 all. A trial that fails at any step is reported and skipped;
the remaining trials and subjects are still processed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, _ := cmd.Flags().GetString("steps")
		steps, err := pipeline.ParseSteps(sel)
		if err != nil {
			return err
		}
		return runSteps(cmd.Context(), steps)
	},
}

func init() {
	runCmd.Flags().String("steps", "0", "comma-separated steps: 1 split, 2 preprocess, 3 visualize, 0 all")
	rootCmd.AddCommand(runCmd)
}
