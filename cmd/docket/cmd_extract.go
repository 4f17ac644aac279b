package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"docket/internal/cashscan"
	"docket/internal/extract"
	"docket/internal/jsonl"
	"docket/internal/outcome"
	"docket/internal/quotes"
)

var extractFlags struct {
	docsPath   string
	outDir     string
	configPath string
	rulesPath  string
	parallel   int
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract quotes, outcomes, and cash amounts from document text",
	Long: `Extract reads a JSONL file of documents ({doc_id, raw_text}), cleans
each document's text, and writes three JSONL streams to the output
directory:

  quotes.jsonl        quote candidates with speaker attribution
  outcomes.jsonl      per-document outcome classifications and amounts
  cash_amounts.jsonl  deduplicated cash-amount candidates with feature votes`,
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVar(&extractFlags.docsPath, "docs", "", "Input documents JSONL path (required)")
	f.StringVarP(&extractFlags.outDir, "out-dir", "o", ".docket/extract", "Output directory")
	f.StringVar(&extractFlags.configPath, "config", "", "Cash scanner config YAML (default: embedded)")
	f.StringVar(&extractFlags.rulesPath, "rules", "", "Outcome classification rules YAML (default: embedded)")
	f.IntVar(&extractFlags.parallel, "parallel", runtime.NumCPU(), "Max documents processed concurrently")

	_ = extractCmd.MarkFlagRequired("docs")
}

func runExtract(cmd *cobra.Command, _ []string) error {
	scanCfg := cashscan.DefaultConfig()
	if extractFlags.configPath != "" {
		data, err := os.ReadFile(extractFlags.configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if scanCfg, err = cashscan.ParseConfig(data); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}

	docs, err := jsonl.ReadFile[extract.Document](extractFlags.docsPath)
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents in %s", extractFlags.docsPath)
	}

	p := extract.New(scanCfg, quotes.DefaultConfig())
	if extractFlags.rulesPath != "" {
		data, err := os.ReadFile(extractFlags.rulesPath)
		if err != nil {
			return fmt.Errorf("read rules: %w", err)
		}
		rs, err := outcome.ParseRules(data)
		if err != nil {
			return fmt.Errorf("parse rules: %w", err)
		}
		p = extract.NewWithRules(scanCfg, quotes.DefaultConfig(), rs)
	}
	out, err := p.Run(cmd.Context(), docs, extractFlags.parallel)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	dir := extractFlags.outDir
	if err := jsonl.WriteFile(filepath.Join(dir, "quotes.jsonl"), out.Quotes); err != nil {
		return fmt.Errorf("write quotes: %w", err)
	}
	if err := jsonl.WriteFile(filepath.Join(dir, "outcomes.jsonl"), out.Outcomes); err != nil {
		return fmt.Errorf("write outcomes: %w", err)
	}
	if err := jsonl.WriteFile(filepath.Join(dir, "cash_amounts.jsonl"), out.Cash); err != nil {
		return fmt.Errorf("write cash amounts: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Processed %d documents (%d unresolved case IDs)\n", len(docs), out.Unresolved)
	fmt.Fprintf(w, "  %s: %d quotes\n", filepath.Join(dir, "quotes.jsonl"), len(out.Quotes))
	fmt.Fprintf(w, "  %s: %d outcomes\n", filepath.Join(dir, "outcomes.jsonl"), len(out.Outcomes))
	fmt.Fprintf(w, "  %s: %d cash amounts\n", filepath.Join(dir, "cash_amounts.jsonl"), len(out.Cash))
	return nil
}
