package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docket/internal/assign"
	"docket/internal/cashscan"
	"docket/internal/jsonl"
	"docket/internal/outcome"
	"docket/internal/validate"
)

var validateFlags struct {
	quotesInPath     string
	quotesOutPath    string
	outcomesPath     string
	cashPath         string
	preferredOutcome string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an enriched corpus against its inputs",
	Long: `Validate re-derives what the assignment stage should have produced and
checks the enriched corpus against it: row count, output schema, value
provenance, per-case consistency, and priority logic. Any failing check
makes the command exit non-zero.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateFlags.quotesInPath, "quotes-in", "", "Original quotes JSONL path (required)")
	f.StringVar(&validateFlags.quotesOutPath, "quotes-out", "", "Enriched quotes JSONL path (required)")
	f.StringVar(&validateFlags.outcomesPath, "outcomes", "", "Outcomes JSONL path (required)")
	f.StringVar(&validateFlags.cashPath, "cash", "", "Cash amounts JSONL path (required)")
	f.StringVar(&validateFlags.preferredOutcome, "preferred-outcome", "stipulated_judgment", "Preferred outcome type the run used")

	_ = validateCmd.MarkFlagRequired("quotes-in")
	_ = validateCmd.MarkFlagRequired("quotes-out")
	_ = validateCmd.MarkFlagRequired("outcomes")
	_ = validateCmd.MarkFlagRequired("cash")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	in, err := jsonl.ReadFile[assign.Quote](validateFlags.quotesInPath)
	if err != nil {
		return fmt.Errorf("read input quotes: %w", err)
	}
	out, err := jsonl.ReadFile[assign.EnrichedQuote](validateFlags.quotesOutPath)
	if err != nil {
		return fmt.Errorf("read enriched quotes: %w", err)
	}
	// The schema check works on the raw objects, so missing fields are
	// visible rather than zero-filled by decoding.
	raw, err := jsonl.ReadFile[map[string]any](validateFlags.quotesOutPath)
	if err != nil {
		return fmt.Errorf("read enriched quotes: %w", err)
	}
	outcomes, err := jsonl.ReadFile[outcome.Record](validateFlags.outcomesPath)
	if err != nil {
		return fmt.Errorf("read outcomes: %w", err)
	}
	cash, err := jsonl.ReadFile[cashscan.Candidate](validateFlags.cashPath)
	if err != nil {
		return fmt.Errorf("read cash amounts: %w", err)
	}

	results := validate.Run(in, out, raw, outcomes, cash, validateFlags.preferredOutcome)

	w := cmd.OutOrStdout()
	for _, r := range results {
		mark := "PASS"
		if !r.Pass {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%s  %-18s %s\n", mark, r.Name, r.Detail)
	}
	if !validate.Passed(results) {
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(w, "All checks passed (%d rows)\n", len(out))
	return nil
}
