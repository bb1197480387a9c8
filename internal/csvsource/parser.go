// =============================================================================
// Invoice Reconciliation - CSV Source Parser
// =============================================================================
//
// Parses one CSV export into the shared Table model. The masters come from
// several systems with different export quality, so parsing is two-stage:
//
//   1. Strict parse via encoding/csv (quoted fields, embedded newlines).
//   2. Fallback: naive line/comma splitter for files the csv package
//      rejects (stray quotes, broken newlines). Rows whose field count does
//      not match the header are dropped, not errored.
//
// The fallback tolerates data loss: it logs a warning and counts the dropped
// rows so the run summary reflects the loss, but a degraded source still
// produces a complete output artifact.
//
// =============================================================================

package csvsource

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// Parse parses CSV bytes into a Table. The first non-empty row is the
// header; every following row becomes a header -> value map with trimmed
// values and "" for missing trailing columns.
//
// Parse only fails when the input has no usable content at all; a partially
// readable file comes back as a (possibly reduced) table.
func Parse(data []byte, label string, log types.Logger) (*types.Table, error) {
	text := string(data)

	table, err := parseStrict(text, label)
	if err == nil {
		log.Info("%s rows (csv): %d", label, len(table.Rows))
		return table, nil
	}

	log.Warn("%s CSV parse failed: %v. Falling back to simple split parser; some rows may be skipped.", label, err)

	table, err = parseFallback(text, label)
	if err != nil {
		return nil, err
	}

	if table.Dropped > 0 {
		log.Warn("%s fallback parse dropped %d malformed row(s)", label, table.Dropped)
	}
	log.Info("%s rows (fallback): %d", label, len(table.Rows))
	return table, nil
}

// =============================================================================
// STRICT PARSER
// =============================================================================

// parseStrict reads the whole input through encoding/csv.
func parseStrict(text string, label string) (*types.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))

	// Tolerate inconsistent column counts and sloppy quoting; rows shorter
	// than the header are padded with "" during the map conversion.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	table := &types.Table{
		Headers: headers,
		Rows:    rowsToRecords(allRows[1:], headers),
		Label:   label,
	}
	return table, nil
}

// =============================================================================
// FALLBACK PARSER
// =============================================================================

// parseFallback splits lines on newline and fields on comma, with no quote
// handling. Data lines whose arity differs from the header are dropped and
// counted.
func parseFallback(text string, label string) (*types.Table, error) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("CSV has no non-empty lines after fallback parsing")
	}

	headers := cleanHeaders(strings.Split(lines[0], ","))
	table := &types.Table{Headers: headers, Label: label}

	for _, ln := range lines[1:] {
		parts := strings.Split(ln, ",")
		if len(parts) != len(headers) {
			table.Dropped++
			continue
		}
		rec := make(types.Record, len(headers))
		for i, h := range headers {
			rec[h] = types.Norm(parts[i])
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}

// =============================================================================
// ROW CONVERSION
// =============================================================================

// rowsToRecords converts raw rows to header -> value maps, trimming values
// and padding missing trailing columns with "". All-empty rows are skipped.
func rowsToRecords(raw [][]string, headers []string) []types.Record {
	records := make([]types.Record, 0, len(raw))
	for _, row := range raw {
		if isRowEmpty(row) {
			continue
		}
		rec := make(types.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = types.Norm(row[i])
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// cleanHeaders trims headers and names empty ones Column_N so every value
// stays addressable.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		h = types.Norm(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = h
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
