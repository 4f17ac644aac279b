// Package jsonl reads and writes JSON Lines files: one UTF-8 JSON object
// per line. Malformed lines are skipped with a warning rather than failing
// the whole file, so one corrupt record cannot sink a corpus run; the pure
// pipeline stages downstream only ever see well-formed records.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"docket/internal/logging"
)

// maxLineBytes bounds a single record. Court filings run long but a full
// docket entry stays well under 16 MiB.
const maxLineBytes = 16 * 1024 * 1024

// Read decodes every well-formed line of r into T. Malformed lines are
// counted and logged, not returned as errors.
func Read[T any](r io.Reader, name string) ([]T, error) {
	log := logging.New("jsonl")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var out []T
	skipped := 0
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			log.Warn("skipping malformed record", "file", name, "line", lineNum, "error", err)
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("jsonl: read %s: %w", name, err)
	}
	if skipped > 0 {
		log.Warn("malformed records skipped", "file", name, "count", skipped)
	}
	return out, nil
}

// ReadFile decodes a JSONL file into a slice of T.
func ReadFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonl: open %s: %w", path, err)
	}
	defer f.Close()
	return Read[T](f, path)
}

// Write encodes each record as one JSON line.
func Write[T any](w io.Writer, records []T) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("jsonl: encode record %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes records to path as JSONL, creating parent directories.
func WriteFile[T any](path string, records []T) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("jsonl: create dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jsonl: create %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("jsonl: close %s: %w", path, err)
	}
	return nil
}
