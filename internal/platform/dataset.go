// =============================================================================
// Invoice Reconciliation - Platform Collaborators: Dataset Appender
// =============================================================================
//
// Run summaries are pushed to a dataset so downstream automations (the Make
// scenarios that poll for finished runs) can consume them without parsing
// logs. Locally the dataset is a JSONL file; the interface keeps that
// replaceable.
//
// =============================================================================

package platform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DatasetAppender appends one machine-readable record per run.
type DatasetAppender interface {
	Push(record map[string]interface{}) error
}

// JSONLDataset appends records as JSON lines to a file.
type JSONLDataset struct {
	path string
}

// NewJSONLDataset creates a dataset appender writing to path.
func NewJSONLDataset(path string) *JSONLDataset {
	return &JSONLDataset{path: path}
}

// Push appends record as one JSON line.
func (d *JSONLDataset) Push(record map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode summary record: %w", err)
	}

	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append summary record: %w", err)
	}
	return nil
}

// NopDataset discards records. Used for dry runs.
type NopDataset struct{}

func (NopDataset) Push(record map[string]interface{}) error { return nil }

// NopStore discards artifacts. Used for dry runs.
type NopStore struct{}

func (NopStore) Set(name string, data []byte, contentType string) error { return nil }
