package jsonl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type rec struct {
	DocID string  `json:"doc_id"`
	Value float64 `json:"value"`
}

func TestRead_SkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		`{"doc_id":"A_1","value":100}`,
		`{not json`,
		``,
		`{"doc_id":"A_2","value":200}`,
	}, "\n")

	got, err := Read[rec](strings.NewReader(input), "test")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []rec{{DocID: "A_1", Value: 100}, {DocID: "A_2", Value: 200}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	records := []rec{{DocID: "A_1", Value: 100}, {DocID: "A_2", Value: 200}}
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != `{"doc_id":"A_1","value":100}` {
		t.Errorf("line 0 = %q", lines[0])
	}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.jsonl")
	want := []rec{{DocID: "B_1", Value: 42.5}}
	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile[rec](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	got, err := Read[rec](strings.NewReader(""), "empty")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}
