// =============================================================================
// Invoice Reconciliation - Enrich Command
// =============================================================================
//
// Runs the primary-driven enrichment: every invoice master row comes back
// out, with attachment and issue aggregations appended as new columns.
//
// COMMAND USAGE:
//   invoice-recon enrich [flags]
//
// PIPELINE:
//   1. Load the job configuration (year, source references)
//   2. Fetch and parse the invoice master (fatal if missing or empty)
//   3. Fetch and parse attachments and issues (optional, warn if absent)
//   4. Index the secondaries by canonical invoice key
//   5. Join: one enriched output row per invoice master row
//   6. Persist the artifact and push the run summary
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/invoice-reconciliation/internal/config"
	"github.com/ginjaninja78/invoice-reconciliation/internal/pipeline"
	"github.com/ginjaninja78/invoice-reconciliation/internal/platform"
)

// enrichDryRun simulates the run without persisting artifact or summary.
var enrichDryRun bool

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich the invoice master with attachment and issue aggregations",
	Long: `The enrich command downloads the configured invoice, attachment and issue
exports, derives a canonical join key per row, and emits the invoice master
with aggregated attachment metadata (counts, document ids, file names,
Dropbox paths and download args) and issue flags appended.

The output always has exactly one row per invoice master row. Invoices
without a resolvable key are kept, carrying empty enrichment fields.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnrich(cmd, enrichDryRun)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().BoolVar(
		&enrichDryRun,
		"dry-run",
		false,
		"Run the pipeline without writing the artifact or summary",
	)
}

func runEnrich(cmd *cobra.Command, dryRun bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load job config: %w", err)
	}

	p := newPipeline(cfg, dryRun)
	result, err := p.RunEnrich(cmd.Context())
	if err != nil {
		return err
	}

	printRunSummary("Enrichment", result, dryRun)
	return nil
}

// newPipeline wires a pipeline with the logger, store and dataset implied by
// the flags. Dry runs swap in no-op collaborators so the whole pipeline
// still executes.
func newPipeline(cfg *config.Config, dryRun bool) *pipeline.Pipeline {
	logger := platform.NewLogger(effectiveLogLevel(cfg), cfg.Log.Format)

	var store platform.KeyValueStore = platform.NewFSStore(cfg.Output.Dir, cfg.Output.ArchiveDir)
	var dataset platform.DatasetAppender = platform.NewJSONLDataset(cfg.Output.DatasetFile)
	if dryRun {
		logger.Warn("Dry run: artifact and summary will not be persisted")
		store = platform.NopStore{}
		dataset = platform.NopDataset{}
	}

	return pipeline.New(cfg, logger, store, dataset)
}

// printRunSummary prints the operator-facing completion report.
func printRunSummary(kind string, result *pipeline.Result, dryRun bool) {
	fmt.Printf("\n=== %s Complete ===\n", kind)
	fmt.Printf("Run ID:        %s\n", result.RunID)
	fmt.Printf("Output rows:   %d\n", result.OutputRows)
	fmt.Printf("Artifact:      %s\n", result.Artifact)
	fmt.Printf("Time elapsed:  %s\n", result.Duration)
	if dryRun {
		fmt.Println("(dry run - nothing was persisted)")
	}
}
