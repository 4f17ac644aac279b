// Package store persists assignment runs: one manifest per run plus the
// per-case value assignments it produced. The CLI uses it to keep a
// local registry of runs (`docket save`, `docket status`); the pure
// pipeline never touches it.
package store

import "time"

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir (.docket).
const DefaultDBPath = ".docket/docket.db"

// Run is one saved assignment run.
type Run struct {
	ID               string
	PreferredOutcome string
	QuoteCount       int
	CaseCount        int
	CreatedAt        time.Time
}

// CaseRow is one case's authoritative value inside a run. Value is the
// serialized wire form: a number rendered as text, or "N/A".
type CaseRow struct {
	RunID       string
	CaseID      string
	Value       string
	ValueSource string
}

// Store is the persistence facade for runs and their case assignments.
// The CLI uses only this interface; implementation is SQLite or
// in-memory.
type Store interface {
	SaveRun(run *Run, cases []CaseRow) error
	GetRun(id string) (*Run, error)
	ListRuns() ([]*Run, error)
	ListCases(runID string) ([]CaseRow, error)
	Close() error
}
