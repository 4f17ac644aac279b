package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docket/internal/store"
)

var statusFlags struct {
	dbPath string
}

var statusCmd = &cobra.Command{
	Use:   "status [run-id]",
	Short: "List saved runs, or show one run's per-case values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := store.Open(statusFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		return showRun(out, st, args[0])
	}

	runs, err := st.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs. Run 'docket save' after an assignment.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  preferred=%s  quotes=%d  cases=%d\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.ID,
			r.PreferredOutcome, r.QuoteCount, r.CaseCount)
	}
	return nil
}

func showRun(out io.Writer, st store.Store, id string) error {
	run, err := st.GetRun(id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %q not found", id)
	}
	cases, err := st.ListCases(id)
	if err != nil {
		return fmt.Errorf("list cases: %w", err)
	}

	fmt.Fprintf(out, "Run:       %s\n", run.ID)
	fmt.Fprintf(out, "Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Preferred: %s\n", run.PreferredOutcome)
	fmt.Fprintf(out, "Quotes:    %d\n", run.QuoteCount)
	fmt.Fprintf(out, "Cases:     %d\n", run.CaseCount)
	for _, c := range cases {
		fmt.Fprintf(out, "  %-20s %12s  %s\n", c.CaseID, c.Value, c.ValueSource)
	}
	return nil
}
