// =============================================================================
// Invoice Reconciliation - Reconcile Command
// =============================================================================
//
// Runs the three-way coverage audit. Unlike 'enrich', this iterates the
// union of all three sources' key sets: the question is where each invoice
// key appears, not what to append to the invoice master. The two drivers
// stay separate on purpose.
//
// COMMAND USAGE:
//   invoice-recon reconcile [flags]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/invoice-reconciliation/internal/config"
)

// reconcileDryRun simulates the run without persisting artifact or summary.
var reconcileDryRun bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Audit key coverage across ledger, master financials and invoice master",
	Long: `The reconcile command downloads the configured ledger, master financials
and invoice master exports, derives canonical keys, and classifies every key
in the union of the three sources into one of eight coverage categories
(OK_ALL_THREE, MISSING_LEDGER, NO_INVOICE_MASTER, ...).

The output has one row per distinct key, sorted ascending for reproducible
diffs, with per-source row counts and a sample description per source.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load job config: %w", err)
		}

		p := newPipeline(cfg, reconcileDryRun)
		result, err := p.RunCoverage(cmd.Context())
		if err != nil {
			return err
		}

		printRunSummary("Coverage", result, reconcileDryRun)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().BoolVar(
		&reconcileDryRun,
		"dry-run",
		false,
		"Run the pipeline without writing the artifact or summary",
	)
}
