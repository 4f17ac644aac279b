package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docket/internal/assign"
	"docket/internal/cashscan"
	"docket/internal/jsonl"
	"docket/internal/outcome"
)

var assignFlags struct {
	quotesPath       string
	outcomesPath     string
	cashPath         string
	outPath          string
	preferredOutcome string
	alsoInjunctive   bool
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign each case a monetary value and enrich the quote stream",
	Long: `Assign joins the three extraction streams by case and computes one
authoritative (value, source) pair per case:

  1. the largest amount among preferred-outcome documents,
  2. else the highest-voted cash candidate,
  3. else N/A.

Every input quote is written back enriched with its case's value, the
source tag, and the provenance doc IDs. The output has exactly one row
per input row, in input order.`,
	RunE: runAssign,
}

func init() {
	f := assignCmd.Flags()
	f.StringVar(&assignFlags.quotesPath, "quotes", "", "Quotes JSONL path (required)")
	f.StringVar(&assignFlags.outcomesPath, "outcomes", "", "Outcomes JSONL path (required)")
	f.StringVar(&assignFlags.cashPath, "cash", "", "Cash amounts JSONL path (required)")
	f.StringVarP(&assignFlags.outPath, "out", "o", "enriched_quotes.jsonl", "Output JSONL path")
	f.StringVar(&assignFlags.preferredOutcome, "preferred-outcome", "stipulated_judgment", "Preferred outcome type for priority 1")
	f.BoolVar(&assignFlags.alsoInjunctive, "also-injunctive-relief", false, "Also write a variant run preferring injunctive_relief")

	_ = assignCmd.MarkFlagRequired("quotes")
	_ = assignCmd.MarkFlagRequired("outcomes")
	_ = assignCmd.MarkFlagRequired("cash")
}

func runAssign(cmd *cobra.Command, _ []string) error {
	quotes, err := jsonl.ReadFile[assign.Quote](assignFlags.quotesPath)
	if err != nil {
		return fmt.Errorf("read quotes: %w", err)
	}
	outcomes, err := jsonl.ReadFile[outcome.Record](assignFlags.outcomesPath)
	if err != nil {
		return fmt.Errorf("read outcomes: %w", err)
	}
	cash, err := jsonl.ReadFile[cashscan.Candidate](assignFlags.cashPath)
	if err != nil {
		return fmt.Errorf("read cash amounts: %w", err)
	}

	if err := assignAndWrite(cmd, quotes, outcomes, cash,
		assignFlags.preferredOutcome, assignFlags.outPath); err != nil {
		return err
	}

	if assignFlags.alsoInjunctive && assignFlags.preferredOutcome != "injunctive_relief" {
		variant := variantPath(assignFlags.outPath, "injunctive_relief")
		if err := assignAndWrite(cmd, quotes, outcomes, cash,
			"injunctive_relief", variant); err != nil {
			return err
		}
	}
	return nil
}

func assignAndWrite(cmd *cobra.Command, quotes []assign.Quote, outcomes []outcome.Record,
	cash []cashscan.Candidate, preferredType, outPath string) error {
	enriched := assign.Assign(quotes, outcomes, cash, preferredType)

	// Row-count preservation is a hard postcondition: a corpus with
	// dropped or duplicated rows must never reach disk.
	if len(enriched) != len(quotes) {
		return fmt.Errorf("row count changed: %d quotes in, %d rows out", len(quotes), len(enriched))
	}

	if err := jsonl.WriteFile(outPath, enriched); err != nil {
		return fmt.Errorf("write enriched quotes: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d enriched quotes to %s (preferred: %s)\n",
		len(enriched), outPath, preferredType)
	return nil
}

// variantPath inserts the variant name before the .jsonl extension, so
// enriched_quotes.jsonl becomes enriched_quotes.injunctive_relief.jsonl.
func variantPath(path, variant string) string {
	stem := strings.TrimSuffix(path, ".jsonl")
	return stem + "." + variant + ".jsonl"
}
