// =============================================================================
// Invoice Reconciliation - Pipeline
// =============================================================================
//
// Orchestrates one run end to end: fetch and parse the configured sources,
// drive the engine, persist the artifact through the injected store, and
// push the run summary to the dataset.
//
// Two run modes share everything up to the driver:
//   - Enrich:   primary-driven join over the invoice master (one output row
//               per invoice row, enrichment columns appended).
//   - Coverage: union-keyspace audit across ledger, master financials and
//               invoice master (one output row per distinct key).
//
// Fatal conditions (missing required source reference, empty primary)
// terminate the run before any artifact is written. Parse degradation is
// tolerated: the run completes with reduced counts in the summary.
//
// =============================================================================

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/invoice-reconciliation/internal/config"
	"github.com/ginjaninja78/invoice-reconciliation/internal/csvsource"
	"github.com/ginjaninja78/invoice-reconciliation/internal/engine"
	"github.com/ginjaninja78/invoice-reconciliation/internal/output"
	"github.com/ginjaninja78/invoice-reconciliation/internal/platform"
	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
	"github.com/ginjaninja78/invoice-reconciliation/internal/xlsxsource"
	"github.com/ginjaninja78/invoice-reconciliation/pkg/utils"
)

// ErrNoUsableRecords marks a fatal empty-result condition: a source the run
// depends on parsed to zero usable records.
var ErrNoUsableRecords = errors.New("source yielded no usable records")

// Source labels used in logs and summary counters.
const (
	labelInvoices    = "invoices"
	labelAttachments = "attachments"
	labelIssues      = "issues"
	labelLedger      = "ledger"
	labelMaster      = "master_financials"
)

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline runs reconciliation jobs. Collaborators are injected so the
// pipeline itself has no dependency on any hosting platform: the store and
// dataset decide where artifacts and summaries actually go.
type Pipeline struct {
	cfg     *config.Config
	keyer   *engine.Keyer
	log     types.Logger
	store   platform.KeyValueStore
	dataset platform.DatasetAppender
}

// Result is the outcome of a completed run.
type Result struct {
	RunID      string
	Artifact   string
	OutputRows int
	Duration   time.Duration
	Summary    map[string]interface{}
}

// New builds a pipeline for one job. Alias extensions from the job
// configuration are applied to the keyer at lowest priority.
func New(cfg *config.Config, log types.Logger, store platform.KeyValueStore, dataset platform.DatasetAppender) *Pipeline {
	keyer := engine.NewKeyer()
	for kind, extra := range cfg.Aliases {
		keyer.Extend(engine.SourceKind(kind), extra...)
	}

	return &Pipeline{
		cfg:     cfg,
		keyer:   keyer,
		log:     log,
		store:   store,
		dataset: dataset,
	}
}

// =============================================================================
// ENRICHMENT RUN
// =============================================================================

// RunEnrich executes the primary-driven enrichment: invoice master enriched
// with attachment and issue aggregations. Output row count always equals the
// invoice master's row count.
func (p *Pipeline) RunEnrich(ctx context.Context) (*Result, error) {
	start := time.Now()

	if err := p.cfg.ValidateEnrich(); err != nil {
		return nil, err
	}

	invoices, err := p.loadSource(ctx, p.cfg.Sources.Invoices, labelInvoices)
	if err != nil {
		return nil, err
	}
	if invoices.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoUsableRecords, labelInvoices)
	}

	attachments := p.loadOptional(ctx, p.cfg.Sources.Attachments, labelAttachments)
	issues := p.loadOptional(ctx, p.cfg.Sources.Issues, labelIssues)

	p.log.Info("Row counts: invoices=%d, attachments=%d, issues=%d",
		invoices.Len(), attachments.Len(), issues.Len())

	secondaries := []engine.Secondary{
		engine.NewSecondary(engine.SourceAttachment, attachments, p.keyer, engine.AttachmentSpec()),
		engine.NewSecondary(engine.SourceIssue, issues, p.keyer, engine.IssueSpec()),
	}

	enriched := engine.Join(invoices, engine.SourceInvoice, p.keyer, secondaries, p.log)
	p.log.Info("Enriched rows: %d", len(enriched.Rows))

	primaryIdx := engine.BuildIndex(invoices.Rows, p.keyer.KeyFunc(engine.SourceInvoice))

	summary := output.Summary{
		Kind: "enrich",
		Year: p.cfg.Year,
		SourceRows: map[string]int{
			labelInvoices:    invoices.Len(),
			labelAttachments: attachments.Len(),
			labelIssues:      issues.Len(),
		},
		SourceKeys: map[string]int{
			labelInvoices:    primaryIdx.Distinct(),
			labelAttachments: secondaries[0].Index.Distinct(),
			labelIssues:      secondaries[1].Index.Distinct(),
		},
		SourceDropped: map[string]int{
			labelInvoices:    invoices.Dropped,
			labelAttachments: attachments.Dropped,
			labelIssues:      issues.Dropped,
		},
		OutputRows: len(enriched.Rows),
	}

	return p.finish(enriched, p.cfg.Output.EnrichedName, summary, start)
}

// =============================================================================
// COVERAGE RUN
// =============================================================================

// RunCoverage executes the three-way coverage audit over the union of the
// ledger, master financials and invoice master key sets.
func (p *Pipeline) RunCoverage(ctx context.Context) (*Result, error) {
	start := time.Now()

	if err := p.cfg.ValidateCoverage(); err != nil {
		return nil, err
	}

	ledger, err := p.loadSource(ctx, p.cfg.Sources.Ledger, labelLedger)
	if err != nil {
		return nil, err
	}
	master, err := p.loadSource(ctx, p.cfg.Sources.MasterFinancials, labelMaster)
	if err != nil {
		return nil, err
	}
	invoices, err := p.loadSource(ctx, p.cfg.Sources.Invoices, labelInvoices)
	if err != nil {
		return nil, err
	}

	if ledger.Empty() && master.Empty() && invoices.Empty() {
		return nil, fmt.Errorf("%w: all coverage sources", ErrNoUsableRecords)
	}

	p.log.Info("Row counts: ledger=%d, master_financials=%d, invoices=%d",
		ledger.Len(), master.Len(), invoices.Len())

	ledgerIdx := engine.BuildIndex(ledger.Rows, p.keyer.KeyFunc(engine.SourceLedger))
	masterIdx := engine.BuildIndex(master.Rows, p.keyer.KeyFunc(engine.SourceMasterFinancial))
	invoiceIdx := engine.BuildIndex(invoices.Rows, p.keyer.KeyFunc(engine.SourceInvoice))

	p.log.Info("Key coverage: ledger=%d, master=%d, invoices=%d",
		ledgerIdx.Distinct(), masterIdx.Distinct(), invoiceIdx.Distinct())

	coverage := engine.Coverage(ledgerIdx, masterIdx, invoiceIdx)
	p.log.Info("Coverage rows: %d", len(coverage.Rows))

	summary := output.Summary{
		Kind: "coverage",
		Year: p.cfg.Year,
		SourceRows: map[string]int{
			labelLedger:   ledger.Len(),
			labelMaster:   master.Len(),
			labelInvoices: invoices.Len(),
		},
		SourceKeys: map[string]int{
			labelLedger:   ledgerIdx.Distinct(),
			labelMaster:   masterIdx.Distinct(),
			labelInvoices: invoiceIdx.Distinct(),
		},
		SourceDropped: map[string]int{
			labelLedger:   ledger.Dropped,
			labelMaster:   master.Dropped,
			labelInvoices: invoices.Dropped,
		},
		OutputRows: len(coverage.Rows),
	}

	return p.finish(coverage, p.cfg.Output.CoverageName, summary, start)
}

// =============================================================================
// SOURCE LOADING
// =============================================================================

// loadSource fetches and parses one required source.
func (p *Pipeline) loadSource(ctx context.Context, ref config.SourceRef, label string) (*types.Table, error) {
	p.log.Info("Downloading %s from %s", label, ref.Ref())

	data, err := csvsource.Fetch(ctx, ref.Ref())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", label, err)
	}
	p.log.Debug("%s: fetched %d bytes", label, len(data))

	var table *types.Table
	if ref.IsXLSX() {
		table, err = xlsxsource.Parse(data, ref.Sheet, label, p.log)
	} else {
		table, err = csvsource.Parse(data, label, p.log)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", label, err)
	}
	return table, nil
}

// loadOptional fetches and parses an optional source. An unconfigured or
// failing optional source degrades to an empty table with a warning; it
// never fails the run.
func (p *Pipeline) loadOptional(ctx context.Context, ref config.SourceRef, label string) *types.Table {
	if ref.IsZero() {
		p.log.Warn("No %s source provided; skipping.", label)
		return &types.Table{Label: label}
	}

	table, err := p.loadSource(ctx, ref, label)
	if err != nil {
		p.log.Warn("Skipping %s: %v", label, err)
		return &types.Table{Label: label}
	}
	return table
}

// =============================================================================
// ARTIFACT & SUMMARY
// =============================================================================

// finish writes the artifact, pushes the summary and assembles the result.
func (p *Pipeline) finish(table *types.Table, nameFormat string, summary output.Summary, start time.Time) (*Result, error) {
	artifact := utils.GenerateArtifactName(nameFormat, p.cfg.Year)

	data, err := output.WriteCSV(table)
	if err != nil {
		return nil, fmt.Errorf("failed to render artifact: %w", err)
	}

	if err := p.store.Set(artifact, data, output.ContentTypeCSV); err != nil {
		return nil, fmt.Errorf("failed to store artifact %s: %w", artifact, err)
	}

	summary.RunID = uuid.New().String()
	summary.Artifact = artifact

	flat := summary.Flatten()
	if err := p.dataset.Push(flat); err != nil {
		// The artifact is already persisted; a summary push failure should
		// not invalidate the run.
		p.log.Warn("Failed to push run summary: %v", err)
	}

	p.log.Info("Done. Year=%s, kind=%s, rows=%d, artifact=%s",
		p.cfg.Year, summary.Kind, summary.OutputRows, artifact)

	return &Result{
		RunID:      summary.RunID,
		Artifact:   artifact,
		OutputRows: summary.OutputRows,
		Duration:   time.Since(start),
		Summary:    flat,
	}, nil
}
