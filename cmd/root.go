// =============================================================================
// Invoice Reconciliation - Root Command
// =============================================================================
//
// Defines the root command for the Cobra CLI. The run commands ('enrich',
// 'reconcile') are attached to this.
//
// COBRA CLI STRUCTURE:
//   rootCmd (invoice-recon)
//   ├── enrichCmd    (invoice-recon enrich)
//   ├── reconcileCmd (invoice-recon reconcile)
//   └── versionCmd   (invoice-recon version)
//
// The root command owns the global flags (--config, --verbose, --quiet,
// --log-level) and loads a .env file so source URLs and the year can come
// from the environment instead of the job file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/invoice-reconciliation/internal/config"
)

// cfgFile holds the path to the job configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// quiet restricts logging to warnings and errors.
var quiet bool

// logLevel explicitly sets the log level, overriding -v/-q.
var logLevel string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invoice-recon",
	Short: "Invoice Reconciliation - Merge and audit heterogeneous invoice CSV exports",
	Long: `Invoice Reconciliation is a CLI tool that correlates invoice records
across independently maintained CSV/XLSX exports that disagree on column
naming, and emits one denormalized artifact per run plus a machine-readable
summary.

Key Features:
  - Canonical join-key derivation across inconsistent upstream headers
  - Deterministic aggregation of attachments and issue flags per invoice
  - Three-way ledger/master/invoice coverage audit
  - Tolerant CSV parsing with a fallback splitter for malformed exports

Example Usage:
  invoice-recon enrich                      # Enrich the invoice master
  invoice-recon enrich --config ./job.yaml  # Use a custom job file
  invoice-recon reconcile                   # Three-way coverage audit`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort: a missing .env file is not an error.
		_ = godotenv.Load()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"job.yaml",
		"Path to the job configuration file (default is job.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&quiet,
		"quiet",
		"q",
		false,
		"Only log warnings and errors",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"Log level: trace, debug, info, warn, error (overrides -v/-q)",
	)
}

// effectiveLogLevel resolves the log level for a run.
// Precedence (highest to lowest):
//  1. --log-level flag (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. Job file / LOG_LEVEL environment (already merged into the config)
//  5. Default (info)
func effectiveLogLevel(cfg *config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	if verbose && quiet {
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	}
	if verbose {
		return "debug"
	}
	if quiet {
		return "warn"
	}
	if cfg.Log.Level != "" {
		return cfg.Log.Level
	}
	return "info"
}
