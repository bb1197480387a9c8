// =============================================================================
// Invoice Reconciliation - XLSX Source Parser
// =============================================================================
//
// Some masters are handed over as spreadsheets rather than CSV exports. This
// module reads one worksheet into the same Table model the CSV parser
// produces, so the engine never knows which format a source arrived in.
//
// =============================================================================

package xlsxsource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// Parse reads one sheet of an XLSX workbook into a Table. An empty sheet
// name selects the workbook's first sheet. The first non-empty row is the
// header; later rows become header -> value maps exactly as with CSV.
func Parse(data []byte, sheet string, label string, log types.Logger) (*types.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := cleanHeaders(rows[0])
	table := &types.Table{Headers: headers, Label: label}

	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rec := make(types.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = types.Norm(row[i])
			} else {
				// excelize trims trailing empty cells from GetRows.
				rec[h] = ""
			}
		}
		table.Rows = append(table.Rows, rec)
	}

	log.Info("%s rows (xlsx sheet %q): %d", label, sheet, len(table.Rows))
	return table, nil
}

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

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
