package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

func TestBuildIndex(t *testing.T) {
	rows := []types.Record{
		{"Invoice ID": "a1", "Doc ID": "D1"},
		{"Invoice ID": "A1", "Doc ID": "D2"},
		{"Invoice ID": "B2", "Doc ID": "D3"},
		{"Amount": "10"}, // unkeyable, skipped
	}

	idx := BuildIndex(rows, func(r types.Record) string { return ExtractKey(r, SourceAttachment) })

	assert.Equal(t, 3, idx.Indexed())
	assert.Equal(t, 1, idx.Skipped())
	assert.Equal(t, len(rows), idx.Indexed()+idx.Skipped())
	assert.Equal(t, 2, idx.Distinct())

	// Case-folded keys collapse; insertion order within a key equals input
	// row order.
	matched := idx.Lookup("A1")
	require.Len(t, matched, 2)
	assert.Equal(t, "D1", matched[0]["Doc ID"])
	assert.Equal(t, "D2", matched[1]["Doc ID"])
}

func TestIndexLookupAbsentKey(t *testing.T) {
	idx := BuildIndex(nil, func(r types.Record) string { return "" })
	assert.Empty(t, idx.Lookup("NOPE"))
	assert.Empty(t, idx.Lookup(""))
	assert.False(t, idx.Has("NOPE"))
}

// Records whose key resolves to "" must never appear under any key.
func TestIndexExcludesUnkeyable(t *testing.T) {
	rows := []types.Record{
		{"Invoice ID": "", "Doc ID": "D1"},
		{"Invoice ID": "  ", "Doc ID": "D2"},
	}
	idx := BuildIndex(rows, func(r types.Record) string { return ExtractKey(r, SourceAttachment) })

	assert.Equal(t, 0, idx.Indexed())
	assert.Equal(t, 2, idx.Skipped())
	assert.Empty(t, idx.KeySet())
}

func TestIndexKeySet(t *testing.T) {
	rows := []types.Record{
		{"Invoice ID": "a1"},
		{"Invoice ID": "b2"},
		{"Invoice ID": "A1"},
	}
	idx := BuildIndex(rows, func(r types.Record) string { return ExtractKey(r, SourceInvoice) })

	keys := idx.KeySet()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "A1")
	assert.Contains(t, keys, "B2")
}
