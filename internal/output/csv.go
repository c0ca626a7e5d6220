package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
)

// CSVWriter streams rows as CSV to a file or io.Writer. The header is written
// at construction time; after that the writer only appends, so the output is
// deterministic for a given record sequence.
type CSVWriter struct {
	mu        sync.Mutex
	csv       *csv.Writer
	count     int
	closed    bool
	closeFunc func() error
}

// NewCSVWriter creates a CSV writer over w and writes the header row.
func NewCSVWriter(w io.Writer, header []string) (*CSVWriter, error) {
	cw := &CSVWriter{csv: csv.NewWriter(w)}
	if err := cw.csv.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return cw, nil
}

// NewCSVFileWriter creates a CSV writer over a newly created file.
// The caller must call Close() when done to flush and close the file.
func NewCSVFileWriter(filename string, header []string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	cw, err := NewCSVWriter(file, header)
	if err != nil {
		file.Close()
		return nil, err
	}
	cw.closeFunc = file.Close
	return cw, nil
}

// Write appends a single row.
func (w *CSVWriter) Write(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of data rows written, excluding the header.
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes buffered rows and closes the underlying file, if any.
// Closing twice is safe; only the first call does work.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
