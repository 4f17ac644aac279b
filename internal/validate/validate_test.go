package validate

import (
	"encoding/json"
	"testing"

	"docket/internal/assign"
	"docket/internal/cashscan"
	"docket/internal/outcome"
)

func amount(v float64) *float64 { return &v }

// fixture builds a small consistent run: case A decided by a preferred
// outcome, case B by voted cash, case C falling back to N/A.
func fixture() (in []assign.Quote, out []assign.EnrichedQuote, outcomes []outcome.Record, cash []cashscan.Candidate) {
	in = []assign.Quote{
		{DocID: "A_1", Text: "qa"},
		{DocID: "B_1", Text: "qb"},
		{DocID: "C_1", Text: "qc"},
	}
	outcomes = []outcome.Record{
		{DocID: "A_1", OutcomeType: "stipulated_judgment", Amount: amount(500000)},
	}
	cash = []cashscan.Candidate{
		{DocID: "B_1", Value: 250000, FeatureVotes: 2},
	}
	out = assign.Assign(in, outcomes, cash, "stipulated_judgment")
	return
}

func rawRows(t *testing.T, out []assign.EnrichedQuote) []map[string]any {
	t.Helper()
	raw := make([]map[string]any, len(out))
	for i, q := range out {
		data, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("marshal row %d: %v", i, err)
		}
		if err := json.Unmarshal(data, &raw[i]); err != nil {
			t.Fatalf("unmarshal row %d: %v", i, err)
		}
	}
	return raw
}

func TestRun_AllPassOnEngineOutput(t *testing.T) {
	in, out, outcomes, cash := fixture()
	results := Run(in, out, rawRows(t, out), outcomes, cash, "stipulated_judgment")
	if !Passed(results) {
		t.Errorf("expected all checks to pass, got %+v", results)
	}
	if len(results) != 5 {
		t.Errorf("got %d results, want 5", len(results))
	}
}

func TestRowCount_Mismatch(t *testing.T) {
	in, out, _, _ := fixture()
	r := RowCount(in, out[:len(out)-1])
	if r.Pass {
		t.Error("expected row_count failure on truncated output")
	}
}

func TestSchema_MissingField(t *testing.T) {
	_, out, _, _ := fixture()
	raw := rawRows(t, out)
	delete(raw[1], "value_source")
	if r := Schema(raw); r.Pass {
		t.Error("expected schema failure on missing field")
	}
}

func TestNoFabrication_DetectsForeignValue(t *testing.T) {
	_, out, outcomes, cash := fixture()
	out[0].AssignedCaseValue = assign.Value(999999) // not in any source pool
	if r := NoFabrication(out, outcomes, cash); r.Pass {
		t.Error("expected no_fabrication failure on foreign value")
	}
}

func TestNoFabrication_NAWithNonNASource(t *testing.T) {
	_, out, outcomes, cash := fixture()
	out[2].ValueSource = assign.SourceCash // but the value is N/A
	if r := NoFabrication(out, outcomes, cash); r.Pass {
		t.Error("expected no_fabrication failure on N/A value with non-N/A source")
	}
}

func TestNoFabrication_InvalidSourceTag(t *testing.T) {
	_, out, outcomes, cash := fixture()
	out[0].ValueSource = "manual_override"
	if r := NoFabrication(out, outcomes, cash); r.Pass {
		t.Error("expected no_fabrication failure on unknown source tag")
	}
}

func TestNoFabrication_SourcePoolIsTagConsistent(t *testing.T) {
	_, out, outcomes, cash := fixture()
	// Cash pool value declared under an outcome tag must fail.
	out[0].AssignedCaseValue = assign.Value(250000)
	if r := NoFabrication(out, outcomes, cash); r.Pass {
		t.Error("expected failure: cash value under outcome_metadata source tag")
	}
}

func TestCaseConsistency_Detect(t *testing.T) {
	in := []assign.Quote{
		{DocID: "A_1", Text: "q1"},
		{DocID: "A_2", Text: "q2"},
	}
	out := assign.Assign(in, []outcome.Record{
		{DocID: "A_1", OutcomeType: "stipulated_judgment", Amount: amount(100000)},
	}, nil, "stipulated_judgment")

	if r := CaseConsistency(out); !r.Pass {
		t.Errorf("expected consistency pass, got %+v", r)
	}

	out[1].AssignedCaseValue = assign.Value(42)
	if r := CaseConsistency(out); r.Pass {
		t.Error("expected case_consistency failure on divergent value")
	}
}

func TestPriorityLogic_OutcomeShouldHaveWon(t *testing.T) {
	_, out, outcomes, cash := fixture()
	// Corrupt case A to claim a cash source despite a qualifying outcome.
	out[0].ValueSource = assign.SourceCash
	out[0].AssignedCaseValue = assign.Value(250000)
	if r := PriorityLogic(out, outcomes, cash, "stipulated_judgment"); r.Pass {
		t.Error("expected priority_logic failure when outcome tier was skipped")
	}
}

func TestPriorityLogic_NAWhenSourcesExist(t *testing.T) {
	_, out, outcomes, cash := fixture()
	out[1].ValueSource = assign.SourceNA
	out[1].AssignedCaseValue = assign.NA()
	if r := PriorityLogic(out, outcomes, cash, "stipulated_judgment"); r.Pass {
		t.Error("expected priority_logic failure when voted cash was ignored")
	}
}

func TestPriorityLogic_ValueWhenNoneAuthorized(t *testing.T) {
	_, out, outcomes, cash := fixture()
	out[2].ValueSource = assign.SourceCash
	out[2].AssignedCaseValue = assign.Value(77777)
	if r := PriorityLogic(out, outcomes, cash, "stipulated_judgment"); r.Pass {
		t.Error("expected priority_logic failure when N/A case claims a value")
	}
}

func TestPassed(t *testing.T) {
	ok := []Result{{Name: "a", Pass: true}, {Name: "b", Pass: true}}
	if !Passed(ok) {
		t.Error("Passed = false for all-pass results")
	}
	bad := []Result{{Name: "a", Pass: true}, {Name: "b", Pass: false}}
	if Passed(bad) {
		t.Error("Passed = true with a failing result")
	}
}
