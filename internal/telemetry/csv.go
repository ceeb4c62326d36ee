// Package telemetry records per-tick world statistics as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends records of type T to a CSV stream, writing the header
// once. A nil *CSVWriter discards everything, so callers can leave output
// disabled without branching.
type CSVWriter[T any] struct {
	mu            sync.Mutex
	out           io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewCSVWriter wraps out.
func NewCSVWriter[T any](out io.Writer) *CSVWriter[T] {
	return &CSVWriter[T]{out: out}
}

// CreateCSV creates the file at path, including missing directories.
// Returns nil if path is empty (output disabled).
func CreateCSV[T any](path string) (*CSVWriter[T], error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &CSVWriter[T]{out: f, closer: f}, nil
}

// Write appends records.
func (w *CSVWriter[T]) Write(records ...T) error {
	if w == nil || len(records) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the writer owns one.
func (w *CSVWriter[T]) Close() error {
	if w == nil || w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// ReadCSV decodes every record from r.
func ReadCSV[T any](r io.Reader) ([]T, error) {
	var records []T
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return records, nil
}
