package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Output appends samples to population.csv in a run directory.
type Output struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewOutput creates dir and opens population.csv. It returns nil, nil when
// dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "population.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating population.csv: %w", err)
	}
	return &Output{dir: dir, file: f}, nil
}

// Write appends samples, emitting the header on the first call.
func (o *Output) Write(samples []Sample) error {
	if o == nil || len(samples) == 0 {
		return nil
	}
	if !o.headerWritten {
		if err := gocsv.Marshal(samples, o.file); err != nil {
			return fmt.Errorf("writing population: %w", err)
		}
		o.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(samples, o.file); err != nil {
		return fmt.Errorf("writing population: %w", err)
	}
	return nil
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// Close closes the CSV file.
func (o *Output) Close() error {
	if o == nil || o.file == nil {
		return nil
	}
	return o.file.Close()
}
