package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosig/biosig/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect recorded runs and trial outcomes",
	Long: `Ledger lists the runs recorded in the SQLite ledger and the per-trial
stage outcomes of a run. Use --failed to show failures only.`,
	RunE: runLedger,
}

func runLedger(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Paths.Ledger == "" {
		return fmt.Errorf("no ledger configured (paths.ledger)")
	}

	led, err := ledger.Open(cmd.Context(), cfg.Paths.Ledger)
	if err != nil {
		return err
	}
	defer led.Close()

	runID, _ := cmd.Flags().GetString("run")
	failed, _ := cmd.Flags().GetBool("failed")
	listRuns, _ := cmd.Flags().GetBool("runs")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if listRuns {
		runs, err := led.Runs(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "RUN\tSTARTED")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	var results []ledger.Result
	if failed {
		results, err = led.Failures(cmd.Context(), runID)
	} else {
		results, err = led.Results(cmd.Context(), runID)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	fmt.Fprintln(w, "SUBJECT\tTRIAL\tSTAGE\tSTATUS\tROWS\tDETAIL")
	for _, r := range results {
		detail := strings.ReplaceAll(r.Detail, "\n", " ")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", r.Subject, r.Trial, r.Stage, r.Status, r.Rows, detail)
	}
	return nil
}

func init() {
	ledgerCmd.Flags().String("run", "", "run ID (default: all runs)")
	ledgerCmd.Flags().Bool("failed", false, "show failed trials only")
	ledgerCmd.Flags().Bool("runs", false, "list runs instead of results")
	rootCmd.AddCommand(ledgerCmd)
}
