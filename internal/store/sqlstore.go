package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and ensures the schema.
// Creates the parent directory (e.g. .docket) if it does not exist.
func Open(path string) (*SqlStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	var v int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case v != schemaVersion:
		return fmt.Errorf("unknown schema version %d", v)
	}
	return nil
}

func (s *SqlStore) SaveRun(run *Run, cases []CaseRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = tx.Exec(
		"INSERT INTO runs(id, preferred_outcome, quote_count, case_count, created_at) VALUES(?,?,?,?,?)",
		run.ID, run.PreferredOutcome, run.QuoteCount, run.CaseCount, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	for _, c := range cases {
		_, err = tx.Exec(
			"INSERT INTO case_values(run_id, case_id, value, value_source) VALUES(?,?,?,?)",
			run.ID, c.CaseID, c.Value, c.ValueSource,
		)
		if err != nil {
			return fmt.Errorf("insert case %s/%s: %w", run.ID, c.CaseID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save run: %w", err)
	}
	return nil
}

func (s *SqlStore) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		"SELECT id, preferred_outcome, quote_count, case_count, created_at FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

func (s *SqlStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(
		"SELECT id, preferred_outcome, quote_count, case_count, created_at FROM runs ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SqlStore) ListCases(runID string) ([]CaseRow, error) {
	rows, err := s.db.Query(
		"SELECT run_id, case_id, value, value_source FROM case_values WHERE run_id = ? ORDER BY case_id", runID)
	if err != nil {
		return nil, fmt.Errorf("list cases %s: %w", runID, err)
	}
	defer rows.Close()

	var cases []CaseRow
	for rows.Next() {
		var c CaseRow
		if err := rows.Scan(&c.RunID, &c.CaseID, &c.Value, &c.ValueSource); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *SqlStore) Close() error { return s.db.Close() }

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var created string
	if err := sc.Scan(&run.ID, &run.PreferredOutcome, &run.QuoteCount, &run.CaseCount, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	run.CreatedAt = t
	return &run, nil
}
