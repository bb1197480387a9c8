package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryFlatten(t *testing.T) {
	s := Summary{
		RunID:    "run-1",
		Kind:     "enrich",
		Year:     "2016",
		Artifact: "invoice_master_enriched_2016.csv",
		SourceRows: map[string]int{
			"invoices":    3,
			"attachments": 5,
		},
		SourceKeys: map[string]int{
			"invoices": 3,
		},
		SourceDropped: map[string]int{
			"invoices":    0,
			"attachments": 2,
		},
		OutputRows: 3,
	}

	flat := s.Flatten()

	assert.Equal(t, "run-1", flat["run_id"])
	assert.Equal(t, "enrich", flat["run_kind"])
	assert.Equal(t, "2016", flat["year"])
	assert.Equal(t, "invoice_master_enriched_2016.csv", flat["artifact"])
	assert.Equal(t, 3, flat["output_rows"])
	assert.Equal(t, 3, flat["invoices_rows"])
	assert.Equal(t, 5, flat["attachments_rows"])
	assert.Equal(t, 3, flat["invoices_distinct_keys"])

	// Zero drop counters are omitted; real drops are reported.
	assert.NotContains(t, flat, "invoices_dropped_rows")
	assert.Equal(t, 2, flat["attachments_dropped_rows"])
}
