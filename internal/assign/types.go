package assign

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Quote is an input quote record. CaseID may be absent on the wire; the
// engine derives it from DocID before aggregation.
type Quote struct {
	DocID   string `json:"doc_id"`
	CaseID  string `json:"case_id,omitempty"`
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
}

// EnrichedQuote is one output row: the input quote plus the case-level
// value fields. Every quote sharing a case_id carries an identical
// value/source pair.
type EnrichedQuote struct {
	CaseID               string    `json:"case_id"`
	DocID                string    `json:"doc_id"`
	QuoteText            string    `json:"quote_text"`
	Speaker              string    `json:"speaker"`
	AssignedCaseValue    CaseValue `json:"assigned_case_value"`
	ValueSource          string    `json:"value_source"`
	PreferredOutcomeType string    `json:"preferred_outcome_type"`
	SourceOutcomeDocIDs  []string  `json:"source_outcome_doc_ids"`
	SourceCashDocIDs     []string  `json:"source_cash_doc_ids"`
}

// SourceNA tags the fallback tier: no authorized source produced a value.
const SourceNA = "N/A"

// SourceCash tags priority 2: the highest-voted cash candidate.
const SourceCash = "cash_amount.highest_votes"

// SourceOutcome tags priority 1 for the given preferred outcome type.
func SourceOutcome(preferredType string) string {
	return "outcome_metadata." + preferredType
}

// naLiteral is the wire spelling of an absent case value.
var naLiteral = []byte(`"N/A"`)

// CaseValue is a monetary value that may be absent. Absent serializes as
// the literal string "N/A", matching the corpus wire format; present
// serializes as a plain JSON number. Absent is not zero: a $0 value is
// never assigned.
type CaseValue struct {
	Amount float64
	Valid  bool
}

// Value returns a present CaseValue.
func Value(amount float64) CaseValue {
	return CaseValue{Amount: amount, Valid: true}
}

// NA returns the absent CaseValue.
func NA() CaseValue {
	return CaseValue{}
}

func (v CaseValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return naLiteral, nil
	}
	return json.Marshal(v.Amount)
}

func (v *CaseValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, naLiteral) || bytes.Equal(data, []byte("null")) {
		*v = CaseValue{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("assign: case value must be a number or %q: %w", "N/A", err)
	}
	*v = CaseValue{Amount: f, Valid: true}
	return nil
}

func (v CaseValue) String() string {
	if !v.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%v", v.Amount)
}

// Assignment is the authoritative value tuple for one case: exactly one
// exists per case_id, and it is never mutated after creation.
type Assignment struct {
	CaseID              string    `json:"case_id"`
	AssignedCaseValue   CaseValue `json:"assigned_case_value"`
	ValueSource         string    `json:"value_source"`
	SourceOutcomeDocIDs []string  `json:"source_outcome_doc_ids"`
	SourceCashDocIDs    []string  `json:"source_cash_doc_ids"`
}
