// =============================================================================
// Invoice Reconciliation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the invoice reconciliation CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   invoice-recon enrich     - Enrich the invoice master with attachments/issues
//   invoice-recon reconcile  - Three-way ledger/master/invoice coverage audit
//   invoice-recon version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : Core business logic (not for external import)
//   - pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/invoice-reconciliation/cmd"
)

func main() {
	cmd.Execute()
}
