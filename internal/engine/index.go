// =============================================================================
// Invoice Reconciliation - Source Indexer
// =============================================================================
//
// Builds the one-to-many key index for a source. Insertion order within a
// key's list equals input row order; "first sample" aggregation depends on
// that, so the index never reorders matches.
//
// =============================================================================

package engine

import "github.com/ginjaninja78/invoice-reconciliation/internal/types"

// Index maps a canonical join key to the records that carry it, in input
// order. Built once per source and read-only afterward.
type Index struct {
	byKey   map[string][]types.Record
	indexed int
	skipped int
}

// BuildIndex indexes records by keyFn in input order. Records whose key
// resolves to "" are skipped: they are dropped from this index only, never
// from the source table itself.
func BuildIndex(rows []types.Record, keyFn func(types.Record) string) *Index {
	idx := &Index{byKey: make(map[string][]types.Record)}
	for _, rec := range rows {
		key := keyFn(rec)
		if key == "" {
			idx.skipped++
			continue
		}
		idx.byKey[key] = append(idx.byKey[key], rec)
		idx.indexed++
	}
	return idx
}

// Lookup returns the records indexed under key, in input order.
// An absent key yields an empty list, never an error.
func (idx *Index) Lookup(key string) []types.Record {
	if idx == nil || key == "" {
		return nil
	}
	return idx.byKey[key]
}

// Has reports whether key is present in the index.
func (idx *Index) Has(key string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.byKey[key]
	return ok
}

// KeySet returns the distinct key set.
func (idx *Index) KeySet() map[string]struct{} {
	if idx == nil {
		return nil
	}
	keys := make(map[string]struct{}, len(idx.byKey))
	for k := range idx.byKey {
		keys[k] = struct{}{}
	}
	return keys
}

// Distinct returns the number of distinct keys.
func (idx *Index) Distinct() int {
	if idx == nil {
		return 0
	}
	return len(idx.byKey)
}

// Indexed returns the number of records placed in the index.
// Indexed + Skipped always equals the input row count.
func (idx *Index) Indexed() int { return idx.indexed }

// Skipped returns the number of records dropped for having an empty key.
func (idx *Index) Skipped() int { return idx.skipped }
