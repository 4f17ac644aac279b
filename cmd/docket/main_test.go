package main

import (
	"testing"

	"docket/internal/assign"
)

func TestVariantPath(t *testing.T) {
	cases := []struct {
		path, variant, want string
	}{
		{"enriched_quotes.jsonl", "injunctive_relief", "enriched_quotes.injunctive_relief.jsonl"},
		{"out/corpus.jsonl", "injunctive_relief", "out/corpus.injunctive_relief.jsonl"},
		{"noext", "injunctive_relief", "noext.injunctive_relief.jsonl"},
	}
	for _, c := range cases {
		if got := variantPath(c.path, c.variant); got != c.want {
			t.Errorf("variantPath(%q, %q) = %q, want %q", c.path, c.variant, got, c.want)
		}
	}
}

func TestCollapseCases(t *testing.T) {
	rows := []assign.EnrichedQuote{
		{CaseID: "1:13-cv-00002", AssignedCaseValue: assign.Value(500000), ValueSource: "outcome_metadata.stipulated_judgment"},
		{CaseID: "1:13-cv-00002", AssignedCaseValue: assign.Value(500000), ValueSource: "outcome_metadata.stipulated_judgment"},
		{CaseID: "1:14-cv-00009", AssignedCaseValue: assign.NA(), ValueSource: "N/A"},
	}
	got := collapseCases("run-1", rows)
	if len(got) != 2 {
		t.Fatalf("got %d cases, want 2", len(got))
	}
	if got[0].CaseID != "1:13-cv-00002" || got[0].Value != "500000" {
		t.Errorf("first case = %+v", got[0])
	}
	if got[1].CaseID != "1:14-cv-00009" || got[1].Value != "N/A" || got[1].ValueSource != "N/A" {
		t.Errorf("second case = %+v", got[1])
	}
	for _, c := range got {
		if c.RunID != "run-1" {
			t.Errorf("RunID = %q, want run-1", c.RunID)
		}
	}
}
