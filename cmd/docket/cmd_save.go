package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docket/internal/assign"
	"docket/internal/jsonl"
	"docket/internal/store"
)

var saveFlags struct {
	quotesPath       string
	dbPath           string
	runID            string
	preferredOutcome string
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record a run's per-case values in the store",
	Long: `Save collapses an enriched corpus to one row per case and records the
run in the store, so later runs can be listed and compared without
re-reading the corpus files.`,
	RunE: runSave,
}

func init() {
	f := saveCmd.Flags()
	f.StringVar(&saveFlags.quotesPath, "quotes", "", "Enriched quotes JSONL path (required)")
	f.StringVar(&saveFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
	f.StringVar(&saveFlags.runID, "run-id", "", "Run ID (default: random UUID)")
	f.StringVar(&saveFlags.preferredOutcome, "preferred-outcome", "stipulated_judgment", "Preferred outcome type the run used")

	_ = saveCmd.MarkFlagRequired("quotes")
}

func runSave(cmd *cobra.Command, _ []string) error {
	rows, err := jsonl.ReadFile[assign.EnrichedQuote](saveFlags.quotesPath)
	if err != nil {
		return fmt.Errorf("read enriched quotes: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows in %s", saveFlags.quotesPath)
	}

	id := saveFlags.runID
	if id == "" {
		id = uuid.NewString()
	}

	cases := collapseCases(id, rows)
	run := &store.Run{
		ID:               id,
		PreferredOutcome: saveFlags.preferredOutcome,
		QuoteCount:       len(rows),
		CaseCount:        len(cases),
		CreatedAt:        time.Now().UTC(),
	}

	st, err := store.Open(saveFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.SaveRun(run, cases); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s: %d quotes across %d cases\n",
		id, run.QuoteCount, run.CaseCount)
	return nil
}

// collapseCases reduces the corpus to one row per case, in first-seen
// order. Every row of a case carries the same value pair, so the first
// row is as good as any.
func collapseCases(runID string, rows []assign.EnrichedQuote) []store.CaseRow {
	seen := make(map[string]bool, len(rows))
	var cases []store.CaseRow
	for _, r := range rows {
		if seen[r.CaseID] {
			continue
		}
		seen[r.CaseID] = true
		cases = append(cases, store.CaseRow{
			RunID:       runID,
			CaseID:      r.CaseID,
			Value:       r.AssignedCaseValue.String(),
			ValueSource: r.ValueSource,
		})
	}
	return cases
}
