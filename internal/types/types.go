// =============================================================================
// Invoice Reconciliation - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvsource
//   - xlsxsource
//   - engine
//   - output
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one parsed row, keyed by column header.
// A record is never mutated after parsing; the engine only produces new
// records from it.
type Record map[string]string

// Clone returns a shallow copy of the record. The join engine merges
// enrichment fields into clones so source tables stay untouched.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is one fully materialized source: the header in file order plus
// every usable data row, also in file order.
type Table struct {
	// Headers contains the column headers in original file order.
	// Output column ordering is derived from this, so it must be preserved.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	Rows []Record

	// Label identifies the source in logs and summaries
	// (e.g. "invoices", "attachments").
	Label string

	// Dropped is the number of rows discarded by the fallback parser
	// because their field count did not match the header.
	Dropped int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no usable rows. A nil table counts
// as empty so optional sources can be passed around without nil checks.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging capability injected into the pipeline and parsers.
// The cmd layer provides a zerolog-backed implementation; the default just
// prints to stdout.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// StdoutLogger is a simple Logger that prints to stdout.
type StdoutLogger struct{}

func (l *StdoutLogger) Debug(msg string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+msg+"\n", args...)
}

func (l *StdoutLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *StdoutLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *StdoutLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// NopLogger discards everything. Used in tests.
type NopLogger struct{}

func (l *NopLogger) Debug(msg string, args ...interface{}) {}
func (l *NopLogger) Info(msg string, args ...interface{})  {}
func (l *NopLogger) Warn(msg string, args ...interface{})  {}
func (l *NopLogger) Error(msg string, args ...interface{}) {}

// =============================================================================
// HELPERS
// =============================================================================

// Norm normalizes a raw cell value to a trimmed string. Missing values are
// represented as "" everywhere, so lookups on absent columns are safe.
func Norm(s string) string {
	return strings.TrimSpace(s)
}
