// =============================================================================
// Invoice Reconciliation - Job Configuration
// =============================================================================
//
// One YAML file describes one reconciliation job: which year it covers,
// where each source export lives, and where the artifacts go. Defaults are
// applied in code, then selected fields can be overridden from the
// environment (a .env file is loaded by the root command), so the same job
// file works across years with only env changes.
//
// SOURCE KINDS:
//   invoices           - invoice master (primary for enrichment)
//   attachments        - attachments master (optional)
//   issues             - issue-tracking export (optional)
//   ledger             - accounting ledger (three-way audit)
//   master_financials  - master financials (three-way audit)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingSource marks a fatal configuration error: a reference the
// requested run cannot start without is absent. Reported before any source
// is fetched or indexed, and never retried.
var ErrMissingSource = errors.New("missing required input")

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// SourceRef points at one source export: either a URL (plain HTTPS GET,
// e.g. a Dropbox share link) or a local file path. XLSX sources may name a
// worksheet; the default is the workbook's first sheet.
type SourceRef struct {
	URL   string `yaml:"url,omitempty"`
	Path  string `yaml:"path,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Ref returns the effective reference, preferring the URL.
func (s SourceRef) Ref() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// IsZero reports whether the source was left unconfigured.
func (s SourceRef) IsZero() bool {
	return s.URL == "" && s.Path == ""
}

// IsXLSX reports whether the reference points at a spreadsheet rather than
// a CSV export. Query strings on share links are ignored for the check.
func (s SourceRef) IsXLSX() bool {
	ref := s.Ref()
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}
	return strings.HasSuffix(strings.ToLower(ref), ".xlsx")
}

// Sources holds the per-kind source references for one job.
type Sources struct {
	Invoices         SourceRef `yaml:"invoices"`
	Attachments      SourceRef `yaml:"attachments"`
	Issues           SourceRef `yaml:"issues"`
	Ledger           SourceRef `yaml:"ledger"`
	MasterFinancials SourceRef `yaml:"master_financials"`
}

// Output holds artifact destinations and naming.
type Output struct {
	// Dir is where artifacts are written. Created on load if missing.
	Dir string `yaml:"dir"`

	// ArchiveDir receives the previous artifact of the same name before a
	// new one is written.
	ArchiveDir string `yaml:"archive_dir"`

	// EnrichedName / CoverageName are artifact file name formats.
	// Placeholders: {year}, {uuid}, {timestamp}.
	EnrichedName string `yaml:"enriched_name"`
	CoverageName string `yaml:"coverage_name"`

	// DatasetFile is the JSONL file run summaries are appended to.
	DatasetFile string `yaml:"dataset_file"`
}

// Log holds logging settings.
type Log struct {
	// Level: trace, debug, info, warn, error.
	Level string `yaml:"level"`

	// Format: "console" or "json".
	Format string `yaml:"format"`
}

// Config is the full job configuration.
type Config struct {
	// Year identifies the reconciliation period and feeds the {year}
	// artifact-name placeholder and the run summary.
	Year string `yaml:"year"`

	Sources Sources `yaml:"sources"`
	Output  Output  `yaml:"output"`
	Log     Log     `yaml:"log"`

	// Aliases appends extra key alias columns per source kind, at lowest
	// priority after the built-in precedence lists. Keys: invoice,
	// attachment, issue, ledger, masterfinancial.
	Aliases map[string][]string `yaml:"aliases"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a job configuration file, applies defaults and the environment
// overlay, and ensures the output directories exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.ensureDirs(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv overlays environment variables onto fields left unset in the
// YAML. The root command loads .env first, so either place works.
func (c *Config) applyEnv() {
	overlay := func(dst *string, key string) {
		if *dst == "" {
			*dst = strings.TrimSpace(os.Getenv(key))
		}
	}
	overlay(&c.Year, "YEAR")
	overlay(&c.Sources.Invoices.URL, "INVOICES_URL")
	overlay(&c.Sources.Attachments.URL, "ATTACH_URL")
	overlay(&c.Sources.Issues.URL, "ISSUES_URL")
	overlay(&c.Sources.Ledger.URL, "LEDGER_URL")
	overlay(&c.Sources.MasterFinancials.URL, "MASTER_URL")
	overlay(&c.Log.Level, "LOG_LEVEL")
}

// applyDefaults sets default values for any unset options.
func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Output.ArchiveDir == "" {
		c.Output.ArchiveDir = "./output_archive"
	}
	if c.Output.EnrichedName == "" {
		c.Output.EnrichedName = "invoice_master_enriched_{year}.csv"
	}
	if c.Output.CoverageName == "" {
		c.Output.CoverageName = "invoice_coverage_{year}.csv"
	}
	if c.Output.DatasetFile == "" {
		c.Output.DatasetFile = filepath.Join(c.Output.Dir, "run_summaries.jsonl")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// ensureDirs creates the output directories if they do not exist.
func (c *Config) ensureDirs() error {
	for _, dir := range []string{c.Output.Dir, c.Output.ArchiveDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateEnrich checks the references an enrichment run cannot start
// without. Attachments and issues are optional: a missing one is skipped
// with a warning, matching how partial years are handed over.
func (c *Config) ValidateEnrich() error {
	if strings.TrimSpace(c.Year) == "" {
		return fmt.Errorf("%w: 'year'", ErrMissingSource)
	}
	if c.Sources.Invoices.IsZero() {
		return fmt.Errorf("%w: 'sources.invoices'", ErrMissingSource)
	}
	return nil
}

// ValidateCoverage checks the references a three-way coverage run requires.
// All three sources must be present; a two-legged audit is not meaningful.
func (c *Config) ValidateCoverage() error {
	if strings.TrimSpace(c.Year) == "" {
		return fmt.Errorf("%w: 'year'", ErrMissingSource)
	}
	if c.Sources.Ledger.IsZero() {
		return fmt.Errorf("%w: 'sources.ledger'", ErrMissingSource)
	}
	if c.Sources.MasterFinancials.IsZero() {
		return fmt.Errorf("%w: 'sources.master_financials'", ErrMissingSource)
	}
	if c.Sources.Invoices.IsZero() {
		return fmt.Errorf("%w: 'sources.invoices'", ErrMissingSource)
	}
	return nil
}
