// =============================================================================
// Invoice Reconciliation - File Utilities
// =============================================================================
//
// Artifact naming and small filesystem helpers shared by the pipeline and
// the platform store.
//
// =============================================================================

package utils

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateArtifactName expands an artifact file name format.
//
// Supported placeholders:
//   {uuid}      - a random UUID
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//   {year}      - the job's reconciliation year
//
// Example: "invoice_master_enriched_{year}.csv" with year "2016" becomes
// "invoice_master_enriched_2016.csv".
func GenerateArtifactName(format string, year string) string {
	name := format
	if strings.Contains(name, "{uuid}") {
		name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	}
	if strings.Contains(name, "{timestamp}") {
		name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	}
	name = strings.ReplaceAll(name, "{year}", year)
	return name
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
