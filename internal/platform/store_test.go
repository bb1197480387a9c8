package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreSet(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir, "")

	require.NoError(t, store.Set("out.csv", []byte("A\n1\n"), "text/csv; charset=utf-8"))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(data))
}

func TestFSStoreArchivesPrevious(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "archive")
	store := NewFSStore(dir, archive)

	require.NoError(t, store.Set("out.csv", []byte("first"), "text/csv"))
	require.NoError(t, store.Set("out.csv", []byte("second"), "text/csv"))

	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	archived, err := os.ReadFile(filepath.Join(archive, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(archived))

	// A third write suffixes the archived name instead of clobbering.
	require.NoError(t, store.Set("out.csv", []byte("third"), "text/csv"))
	suffixed, err := os.ReadFile(filepath.Join(archive, "out_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(suffixed))
}

func TestJSONLDatasetAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.jsonl")
	ds := NewJSONLDataset(path)

	require.NoError(t, ds.Push(map[string]interface{}{"run_id": "a", "output_rows": 1}))
	require.NoError(t, ds.Push(map[string]interface{}{"run_id": "b", "output_rows": 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"run_id":"a"`)
	assert.Contains(t, string(data), `"run_id":"b"`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
