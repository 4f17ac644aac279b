// Package validate checks an assignment run's output against its
// contract. Five independent checkers cover row-count preservation,
// schema completeness, no-fabrication, per-case consistency, and
// priority-logic correctness; a run is correct only when all five pass.
//
// The priority checker is a full oracle: it re-derives each case's
// qualifying source sets from the raw inputs and recomputes which tier
// should have won, rather than trusting any intermediate of the engine.
package validate

import (
	"fmt"
	"strings"

	"docket/internal/assign"
	"docket/internal/caseid"
	"docket/internal/cashscan"
	"docket/internal/outcome"
)

// Result is one checker's verdict.
type Result struct {
	Name   string `json:"name"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail"`
}

func pass(name, format string, args ...any) Result {
	return Result{Name: name, Pass: true, Detail: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Pass: false, Detail: fmt.Sprintf(format, args...)}
}

// requiredFields is the output quote schema.
var requiredFields = []string{
	"case_id", "doc_id", "quote_text", "speaker",
	"assigned_case_value", "value_source", "preferred_outcome_type",
	"source_outcome_doc_ids", "source_cash_doc_ids",
}

// RowCount verifies the engine's hard postcondition: one output row per
// input quote.
func RowCount(in []assign.Quote, out []assign.EnrichedQuote) Result {
	if len(in) != len(out) {
		return fail("row_count", "input %d rows, output %d rows", len(in), len(out))
	}
	return pass("row_count", "%d rows preserved", len(out))
}

// Schema verifies every raw output record carries all required fields.
// It runs against the decoded JSON objects, not the typed structs, so a
// writer bug dropping a key is caught.
func Schema(rows []map[string]any) Result {
	for i, row := range rows {
		for _, field := range requiredFields {
			if _, ok := row[field]; !ok {
				return fail("schema", "row %d missing field %q", i, field)
			}
		}
	}
	return pass("schema", "all required fields present in %d rows", len(rows))
}

// NoFabrication verifies every assigned value is a verbatim copy from
// the authorized source pool consistent with its stated source tag.
func NoFabrication(out []assign.EnrichedQuote, outcomes []outcome.Record, cash []cashscan.Candidate) Result {
	validOutcome := make(map[float64]bool)
	for _, o := range outcomes {
		if o.Amount != nil && *o.Amount > 0 {
			validOutcome[*o.Amount] = true
		}
	}
	validCash := make(map[float64]bool)
	for _, c := range cash {
		if c.FeatureVotes > 0 {
			validCash[c.Value] = true
		}
	}

	for i, q := range out {
		switch {
		case !q.AssignedCaseValue.Valid:
			if q.ValueSource != assign.SourceNA {
				return fail("no_fabrication", "row %d has N/A value but source %q", i, q.ValueSource)
			}
		case strings.Contains(q.ValueSource, "outcome_metadata"):
			if !validOutcome[q.AssignedCaseValue.Amount] {
				return fail("no_fabrication", "row %d value %v not in outcome source pool", i, q.AssignedCaseValue.Amount)
			}
		case q.ValueSource == assign.SourceCash:
			if !validCash[q.AssignedCaseValue.Amount] {
				return fail("no_fabrication", "row %d value %v not in voted cash pool", i, q.AssignedCaseValue.Amount)
			}
		default:
			return fail("no_fabrication", "row %d has invalid source %q", i, q.ValueSource)
		}
	}
	return pass("no_fabrication", "no fabricated values in %d rows", len(out))
}

// valueSourcePair keys the distinct tuples seen per case.
type valueSourcePair struct {
	value  assign.CaseValue
	source string
}

// CaseConsistency verifies every quote in a case carries the identical
// value/source pair.
func CaseConsistency(out []assign.EnrichedQuote) Result {
	perCase := make(map[string]map[valueSourcePair]bool)
	for _, q := range out {
		pairs := perCase[q.CaseID]
		if pairs == nil {
			pairs = make(map[valueSourcePair]bool)
			perCase[q.CaseID] = pairs
		}
		pairs[valueSourcePair{q.AssignedCaseValue, q.ValueSource}] = true
	}
	for id, pairs := range perCase {
		if len(pairs) > 1 {
			return fail("case_consistency", "case %q has %d distinct value/source pairs", id, len(pairs))
		}
	}
	return pass("case_consistency", "all %d cases consistent", len(perCase))
}

// PriorityLogic recomputes, per case, which priority tier should have
// won and asserts the output matches.
func PriorityLogic(out []assign.EnrichedQuote, outcomes []outcome.Record, cash []cashscan.Candidate, preferredType string) Result {
	outcomesByCase := make(map[string][]outcome.Record)
	for _, o := range outcomes {
		if id := derivedCaseID(o.CaseID, o.DocID); id != "" {
			outcomesByCase[id] = append(outcomesByCase[id], o)
		}
	}
	cashByCase := make(map[string][]cashscan.Candidate)
	for _, c := range cash {
		if id := derivedCaseID(c.CaseID, c.DocID); id != "" {
			cashByCase[id] = append(cashByCase[id], c)
		}
	}

	firstPerCase := make(map[string]assign.EnrichedQuote)
	for _, q := range out {
		if q.CaseID == "" {
			continue
		}
		if _, ok := firstPerCase[q.CaseID]; !ok {
			firstPerCase[q.CaseID] = q
		}
	}

	errors := 0
	var firstDetail string
	for id, q := range firstPerCase {
		hasPreferred := false
		for _, o := range outcomesByCase[id] {
			if o.OutcomeType == preferredType && o.Amount != nil && *o.Amount > 0 {
				hasPreferred = true
				break
			}
		}
		if hasPreferred {
			if !strings.Contains(q.ValueSource, assign.SourceOutcome(preferredType)) {
				errors++
				if firstDetail == "" {
					firstDetail = fmt.Sprintf("case %q has a preferred outcome but source %q", id, q.ValueSource)
				}
			}
			continue
		}

		hasVoted := false
		for _, c := range cashByCase[id] {
			if c.FeatureVotes > 0 {
				hasVoted = true
				break
			}
		}
		if hasVoted {
			if q.ValueSource != assign.SourceCash {
				errors++
				if firstDetail == "" {
					firstDetail = fmt.Sprintf("case %q has voted cash but source %q", id, q.ValueSource)
				}
			}
			continue
		}

		if q.AssignedCaseValue.Valid || q.ValueSource != assign.SourceNA {
			errors++
			if firstDetail == "" {
				firstDetail = fmt.Sprintf("case %q should be N/A but got (%v, %q)", id, q.AssignedCaseValue, q.ValueSource)
			}
		}
	}
	if errors > 0 {
		return fail("priority_logic", "%d cases violate priority logic; first: %s", errors, firstDetail)
	}
	return pass("priority_logic", "all %d cases follow priority logic", len(firstPerCase))
}

func derivedCaseID(caseID, docID string) string {
	if caseID != "" {
		return caseID
	}
	id, _ := caseid.Resolve(docID)
	return id
}

// Run executes all five checkers. raw is the output file decoded as
// generic JSON objects for the schema check.
func Run(in []assign.Quote, out []assign.EnrichedQuote, raw []map[string]any,
	outcomes []outcome.Record, cash []cashscan.Candidate, preferredType string) []Result {
	return []Result{
		RowCount(in, out),
		Schema(raw),
		NoFabrication(out, outcomes, cash),
		CaseConsistency(out),
		PriorityLogic(out, outcomes, cash, preferredType),
	}
}

// Passed reports whether every checker passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}
