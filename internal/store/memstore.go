package store

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStore implements Store in memory, for tests and dry runs.
type MemStore struct {
	mu    sync.Mutex
	runs  map[string]*Run
	cases map[string][]CaseRow
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		runs:  make(map[string]*Run),
		cases: make(map[string][]CaseRow),
	}
}

func (m *MemStore) SaveRun(run *Run, cases []CaseRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[run.ID]; exists {
		return fmt.Errorf("run %s already exists", run.ID)
	}
	cp := *run
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.runs[run.ID] = &cp
	m.cases[run.ID] = append([]CaseRow(nil), cases...)
	return nil
}

func (m *MemStore) GetRun(id string) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *run
	return &cp, nil
}

func (m *MemStore) ListRuns() ([]*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) ListCases(runID string) ([]CaseRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]CaseRow(nil), m.cases[runID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CaseID < out[j].CaseID })
	return out, nil
}

func (m *MemStore) Close() error { return nil }
