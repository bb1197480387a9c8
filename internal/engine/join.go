// =============================================================================
// Invoice Reconciliation - Join Engine
// =============================================================================
//
// Primary-driven merge: iterates the primary source in input order, looks
// each row's key up in every secondary index, runs the declared aggregation,
// and merges the results into a copy of the primary row. One output row per
// primary input row, always - an unkeyable primary row simply matches nothing
// and carries the empty aggregation defaults.
//
// =============================================================================

package engine

import (
	"sort"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// Secondary binds one secondary source to the join: its kind (for key
// derivation), its prebuilt index, and the aggregation spec producing its
// enrichment fields.
type Secondary struct {
	Kind  SourceKind
	Index *Index
	Spec  AggSpec
}

// NewSecondary indexes a secondary table and binds it to an aggregation spec.
// A nil or empty table yields an empty index: every lookup misses and the
// enrichment fields fall back to their declared defaults.
func NewSecondary(kind SourceKind, table *types.Table, keyer *Keyer, spec AggSpec) Secondary {
	var rows []types.Record
	if table != nil {
		rows = table.Rows
	}
	return Secondary{
		Kind:  kind,
		Index: BuildIndex(rows, keyer.KeyFunc(kind)),
		Spec:  spec,
	}
}

// Join merges aggregated secondary fields into each primary row.
//
// The returned table's header is the primary header followed by each
// secondary's declared fields. An enrichment field whose name collides with
// an existing column is dropped from the header and never written, so the
// primary value is preserved.
func Join(primary *types.Table, primaryKind SourceKind, keyer *Keyer, secondaries []Secondary, log types.Logger) *types.Table {
	headers := enrichedHeaders(primary, secondaries)
	base := make(map[string]bool, len(primary.Headers))
	for _, h := range primary.Headers {
		base[h] = true
	}

	for _, sec := range secondaries {
		log.Info("Key coverage: %s keys=%d", sec.Kind, sec.Index.Distinct())
	}

	out := &types.Table{
		Headers: headers,
		Rows:    make([]types.Record, 0, len(primary.Rows)),
		Label:   "enriched",
	}

	for _, rec := range primary.Rows {
		key := keyer.Key(rec, primaryKind)
		row := rec.Clone()

		for _, sec := range secondaries {
			agg := sec.Spec.Aggregate(sec.Index.Lookup(key))
			for name, value := range agg {
				if base[name] {
					// Name collision with a primary column: the primary
					// value wins and the enrichment field was already
					// dropped from the header.
					continue
				}
				row[name] = value
			}
		}

		out.Rows = append(out.Rows, row)
	}

	return out
}

// enrichedHeaders builds the output header: primary columns in original
// order, then each secondary's declared fields, skipping collisions.
func enrichedHeaders(primary *types.Table, secondaries []Secondary) []string {
	base := primary.Headers
	if len(base) == 0 && len(primary.Rows) > 0 {
		// Degraded parse with no header record: fall back to the first
		// row's columns, sorted for reproducibility.
		for name := range primary.Rows[0] {
			base = append(base, name)
		}
		sort.Strings(base)
	}

	headers := append([]string(nil), base...)
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}

	for _, sec := range secondaries {
		for _, name := range sec.Spec.Fields() {
			if seen[name] {
				continue
			}
			headers = append(headers, name)
			seen[name] = true
		}
	}

	return headers
}
