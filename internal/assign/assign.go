// Package assign collapses multi-source, per-document monetary signal
// into exactly one authoritative value per case and propagates it to
// every quote in that case.
//
// The policy is strict and deterministic:
//
//	Priority 1: largest non-zero amount among outcomes of the preferred
//	            type (tie: lexicographically smallest doc_id).
//	Priority 2: cash candidate with the most feature votes (> 0), then
//	            largest value, then smallest doc_id.
//	Fallback:   "N/A". Zero amounts and zero-vote candidates never
//	            qualify; a value is only ever copied verbatim from a
//	            source record, never synthesized.
//
// The output always has exactly as many rows as the input quote set, in
// the same order. Callers treat any row-count difference as fatal.
package assign

import (
	"docket/internal/caseid"
	"docket/internal/cashscan"
	"docket/internal/logging"
	"docket/internal/outcome"
)

// Assign computes one Assignment per distinct case among quotes and
// returns every quote enriched with its case's value tuple. Quotes whose
// case cannot be resolved fall into the N/A bucket; they are logged and
// kept, never dropped.
func Assign(quotes []Quote, outcomes []outcome.Record, cash []cashscan.Candidate, preferredType string) []EnrichedQuote {
	log := logging.New("assign")

	quotes = normalizeQuotes(quotes)
	outcomes = normalizeOutcomes(outcomes)
	cash = normalizeCash(cash)

	outcomesByCase := make(map[string][]outcome.Record)
	for _, o := range outcomes {
		if o.CaseID != "" {
			outcomesByCase[o.CaseID] = append(outcomesByCase[o.CaseID], o)
		}
	}
	cashByCase := make(map[string][]cashscan.Candidate)
	for _, c := range cash {
		if c.CaseID != "" {
			cashByCase[c.CaseID] = append(cashByCase[c.CaseID], c)
		}
	}

	assignments := make(map[string]Assignment)
	for _, q := range quotes {
		if q.CaseID == "" {
			continue
		}
		if _, done := assignments[q.CaseID]; done {
			continue
		}
		assignments[q.CaseID] = ComputeCaseValue(
			q.CaseID, outcomesByCase[q.CaseID], cashByCase[q.CaseID], preferredType)
	}
	log.Info("case values computed", "cases", len(assignments), "preferred_outcome", preferredType)

	enriched := make([]EnrichedQuote, 0, len(quotes))
	for _, q := range quotes {
		a, ok := assignments[q.CaseID]
		if !ok {
			a = fallback(q.CaseID)
		}
		enriched = append(enriched, EnrichedQuote{
			CaseID:               q.CaseID,
			DocID:                q.DocID,
			QuoteText:            q.Text,
			Speaker:              q.Speaker,
			AssignedCaseValue:    a.AssignedCaseValue,
			ValueSource:          a.ValueSource,
			PreferredOutcomeType: preferredType,
			SourceOutcomeDocIDs:  a.SourceOutcomeDocIDs,
			SourceCashDocIDs:     a.SourceCashDocIDs,
		})
	}
	return enriched
}

// ComputeCaseValue applies the priority policy to one case's records.
func ComputeCaseValue(caseID string, caseOutcomes []outcome.Record, caseCash []cashscan.Candidate, preferredType string) Assignment {
	// Priority 1: preferred outcome with a non-zero amount.
	preferred := preferredOutcomes(caseOutcomes, preferredType)
	if best := bestOutcome(preferred); best != nil {
		return Assignment{
			CaseID:              caseID,
			AssignedCaseValue:   Value(*best.Amount),
			ValueSource:         SourceOutcome(preferredType),
			SourceOutcomeDocIDs: docIDsOutcomes(preferred),
			SourceCashDocIDs:    []string{},
		}
	}

	// Priority 2: voted cash amount.
	voted := votedCash(caseCash)
	if best := bestCash(voted); best != nil {
		return Assignment{
			CaseID:              caseID,
			AssignedCaseValue:   Value(best.Value),
			ValueSource:         SourceCash,
			SourceOutcomeDocIDs: []string{},
			SourceCashDocIDs:    docIDsCash(voted),
		}
	}

	return fallback(caseID)
}

func fallback(caseID string) Assignment {
	return Assignment{
		CaseID:              caseID,
		AssignedCaseValue:   NA(),
		ValueSource:         SourceNA,
		SourceOutcomeDocIDs: []string{},
		SourceCashDocIDs:    []string{},
	}
}

// preferredOutcomes filters to the preferred type with amount > 0. A zero
// or missing amount is absent, never a valid zero-value outcome.
func preferredOutcomes(recs []outcome.Record, preferredType string) []outcome.Record {
	var out []outcome.Record
	for _, o := range recs {
		if o.OutcomeType == preferredType && o.Amount != nil && *o.Amount > 0 {
			out = append(out, o)
		}
	}
	return out
}

// bestOutcome picks the largest amount, tie-broken by smallest doc_id.
func bestOutcome(recs []outcome.Record) *outcome.Record {
	if len(recs) == 0 {
		return nil
	}
	best := &recs[0]
	for i := 1; i < len(recs); i++ {
		r := &recs[i]
		if *r.Amount > *best.Amount || (*r.Amount == *best.Amount && r.DocID < best.DocID) {
			best = r
		}
	}
	return best
}

// votedCash filters to candidates with feature votes > 0.
func votedCash(cands []cashscan.Candidate) []cashscan.Candidate {
	var out []cashscan.Candidate
	for _, c := range cands {
		if c.FeatureVotes > 0 {
			out = append(out, c)
		}
	}
	return out
}

// bestCash picks the highest votes, then largest value, then smallest doc_id.
func bestCash(cands []cashscan.Candidate) *cashscan.Candidate {
	if len(cands) == 0 {
		return nil
	}
	best := &cands[0]
	for i := 1; i < len(cands); i++ {
		c := &cands[i]
		switch {
		case c.FeatureVotes != best.FeatureVotes:
			if c.FeatureVotes > best.FeatureVotes {
				best = c
			}
		case c.Value != best.Value:
			if c.Value > best.Value {
				best = c
			}
		case c.DocID < best.DocID:
			best = c
		}
	}
	return best
}

func docIDsOutcomes(recs []outcome.Record) []string {
	ids := make([]string, 0, len(recs))
	for _, o := range recs {
		if o.DocID != "" {
			ids = append(ids, o.DocID)
		}
	}
	return ids
}

func docIDsCash(cands []cashscan.Candidate) []string {
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		if c.DocID != "" {
			ids = append(ids, c.DocID)
		}
	}
	return ids
}

// resolveCaseID keeps an existing case ID or derives one from the doc
// ID, logging records that resolve to nothing.
func resolveCaseID(caseID, docID string) string {
	if caseID != "" {
		return caseID
	}
	id, ok := caseid.Resolve(docID)
	if !ok {
		logging.New("assign").Warn("unresolvable case id", "doc_id", docID)
		return ""
	}
	return id
}

// The normalize helpers work on copies; inputs are never mutated.

func normalizeQuotes(in []Quote) []Quote {
	out := make([]Quote, len(in))
	copy(out, in)
	for i := range out {
		out[i].CaseID = resolveCaseID(out[i].CaseID, out[i].DocID)
	}
	return out
}

func normalizeOutcomes(in []outcome.Record) []outcome.Record {
	out := make([]outcome.Record, len(in))
	copy(out, in)
	for i := range out {
		out[i].CaseID = resolveCaseID(out[i].CaseID, out[i].DocID)
	}
	return out
}

func normalizeCash(in []cashscan.Candidate) []cashscan.Candidate {
	out := make([]cashscan.Candidate, len(in))
	copy(out, in)
	for i := range out {
		out[i].CaseID = resolveCaseID(out[i].CaseID, out[i].DocID)
	}
	return out
}
