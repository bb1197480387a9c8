package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateArtifactNameYear(t *testing.T) {
	name := GenerateArtifactName("invoice_master_enriched_{year}.csv", "2016")
	assert.Equal(t, "invoice_master_enriched_2016.csv", name)
}

func TestGenerateArtifactNameUUID(t *testing.T) {
	name := GenerateArtifactName("run_{uuid}.csv", "2016")
	assert.Regexp(t, regexp.MustCompile(`^run_[0-9a-f-]{36}\.csv$`), name)

	// Distinct per call.
	assert.NotEqual(t, name, GenerateArtifactName("run_{uuid}.csv", "2016"))
}

func TestGenerateArtifactNameTimestamp(t *testing.T) {
	name := GenerateArtifactName("coverage_{timestamp}.csv", "2016")
	assert.Regexp(t, regexp.MustCompile(`^coverage_\d{8}_\d{6}\.csv$`), name)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}
