package store

import (
	"path/filepath"
	"testing"
	"time"
)

// openStores returns both implementations against the same test.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := Open(filepath.Join(t.TempDir(), ".docket", "docket.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })
	return map[string]Store{
		"sqlite": sqlStore,
		"memory": NewMemStore(),
	}
}

func sampleRun(id string, at time.Time) (*Run, []CaseRow) {
	run := &Run{
		ID:               id,
		PreferredOutcome: "stipulated_judgment",
		QuoteCount:       12,
		CaseCount:        2,
		CreatedAt:        at,
	}
	cases := []CaseRow{
		{RunID: id, CaseID: "1:13-cv-00002", Value: "500000", ValueSource: "outcome_metadata.stipulated_judgment"},
		{RunID: id, CaseID: "1:14-cv-00009", Value: "N/A", ValueSource: "N/A"},
	}
	return run, cases
}

func TestSaveAndGetRun(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			run, cases := sampleRun("run-1", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
			if err := s.SaveRun(run, cases); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			got, err := s.GetRun("run-1")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if got == nil {
				t.Fatal("GetRun returned nil for saved run")
			}
			if got.PreferredOutcome != "stipulated_judgment" || got.QuoteCount != 12 || got.CaseCount != 2 {
				t.Errorf("run = %+v", got)
			}
			if !got.CreatedAt.Equal(run.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
			}
		})
	}
}

func TestGetRun_Missing(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.GetRun("nope")
			if err != nil {
				t.Fatalf("GetRun: %v", err)
			}
			if got != nil {
				t.Errorf("GetRun = %+v, want nil", got)
			}
		})
	}
}

func TestListCases_SortedByCaseID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			run, cases := sampleRun("run-2", time.Now().UTC())
			cases[0], cases[1] = cases[1], cases[0]
			if err := s.SaveRun(run, cases); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			got, err := s.ListCases("run-2")
			if err != nil {
				t.Fatalf("ListCases: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d cases, want 2", len(got))
			}
			if got[0].CaseID != "1:13-cv-00002" || got[1].CaseID != "1:14-cv-00009" {
				t.Errorf("cases out of order: %+v", got)
			}
			if got[1].Value != "N/A" || got[1].ValueSource != "N/A" {
				t.Errorf("N/A case round trip: %+v", got[1])
			}
		})
	}
}

func TestListRuns_Ordered(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			early, earlyCases := sampleRun("run-a", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
			late, lateCases := sampleRun("run-b", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
			if err := s.SaveRun(late, lateCases); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			if err := s.SaveRun(early, earlyCases); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			runs, err := s.ListRuns()
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			if len(runs) != 2 {
				t.Fatalf("got %d runs, want 2", len(runs))
			}
			if runs[0].ID != "run-a" || runs[1].ID != "run-b" {
				t.Errorf("runs out of order: %s, %s", runs[0].ID, runs[1].ID)
			}
		})
	}
}

func TestSaveRun_DuplicateID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			run, cases := sampleRun("run-dup", time.Now().UTC())
			if err := s.SaveRun(run, cases); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}
			if err := s.SaveRun(run, cases); err == nil {
				t.Error("expected error on duplicate run ID")
			}
		})
	}
}
