// =============================================================================
// Invoice Reconciliation - Output Writer
// =============================================================================
//
// Renders a Table into the CSV artifact. Columns are addressed by name and
// written in the table's header order; row fields outside the header are
// ignored, missing fields are written as "". Writing an artifact and parsing
// it back through csvsource reproduces the same field values.
//
// =============================================================================

package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// ContentTypeCSV is the advisory content type for CSV artifacts.
const ContentTypeCSV = "text/csv; charset=utf-8"

// WriteCSV renders the table as CSV bytes: one header row, then one row per
// record in table order.
func WriteCSV(table *types.Table) ([]byte, error) {
	if len(table.Headers) == 0 {
		return nil, fmt.Errorf("cannot write CSV without headers")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(table.Headers))
	for _, rec := range table.Rows {
		for i, h := range table.Headers {
			row[i] = rec[h]
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
