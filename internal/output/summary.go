// =============================================================================
// Invoice Reconciliation - Run Summary
// =============================================================================
//
// The flat run statistics pushed to the dataset after each run. Field names
// are part of the contract with the downstream automations that poll for
// finished runs; do not rename them casually.
//
// =============================================================================

package output

// Summary is the machine-readable record of one run.
type Summary struct {
	RunID    string
	Kind     string
	Year     string
	Artifact string

	// SourceRows / SourceKeys / SourceDropped are keyed by source label
	// (invoices, attachments, issues, ledger, master_financials).
	SourceRows    map[string]int
	SourceKeys    map[string]int
	SourceDropped map[string]int

	OutputRows int
}

// Flatten renders the summary as the flat mapping the dataset contract
// expects: scalar identifying parameters plus <label>_rows /
// <label>_distinct_keys / <label>_dropped_rows counters.
func (s Summary) Flatten() map[string]interface{} {
	out := map[string]interface{}{
		"run_id":      s.RunID,
		"run_kind":    s.Kind,
		"year":        s.Year,
		"artifact":    s.Artifact,
		"output_rows": s.OutputRows,
	}
	for label, n := range s.SourceRows {
		out[label+"_rows"] = n
	}
	for label, n := range s.SourceKeys {
		out[label+"_distinct_keys"] = n
	}
	for label, n := range s.SourceDropped {
		if n > 0 {
			out[label+"_dropped_rows"] = n
		}
	}
	return out
}
