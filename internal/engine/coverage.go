// =============================================================================
// Invoice Reconciliation - Coverage Classifier
// =============================================================================
//
// Three-way audit across the ledger, the master financials and the invoice
// master. Unlike the primary-driven join, this runs over the union of all
// three key sets: the question here is "where does each key appear", not
// "enrich the invoice master". The two drivers are intentionally separate
// entry points.
//
// =============================================================================

package engine

import (
	"sort"
	"strconv"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// =============================================================================
// COVERAGE LABELS
// =============================================================================

// CoverageLabel classifies a key's presence pattern across the three sources.
type CoverageLabel string

const (
	CoverageOKAllThree         CoverageLabel = "OK_ALL_THREE"
	CoverageNoInvoiceMaster    CoverageLabel = "NO_INVOICE_MASTER"
	CoverageNoMasterFinancials CoverageLabel = "NO_MASTER_FINANCIALS"
	CoverageMissingLedger      CoverageLabel = "MISSING_LEDGER"
	CoverageLedgerOnly         CoverageLabel = "LEDGER_ONLY"
	CoverageMasterOnly         CoverageLabel = "MASTER_ONLY"
	CoverageInvoiceOnly        CoverageLabel = "INVOICE_ONLY"

	// CoverageUnknownPattern is unreachable through the union driver (a key
	// only enters the keyspace by appearing in at least one index) but keeps
	// the truth table total.
	CoverageUnknownPattern CoverageLabel = "UNKNOWN_PATTERN"
)

// Classify maps a presence triple to its coverage label. Total over all
// eight combinations.
func Classify(inLedger, inMaster, inInvoices bool) CoverageLabel {
	switch {
	case inLedger && inMaster && inInvoices:
		return CoverageOKAllThree
	case inLedger && inMaster:
		return CoverageNoInvoiceMaster
	case inLedger && inInvoices:
		return CoverageNoMasterFinancials
	case inMaster && inInvoices:
		return CoverageMissingLedger
	case inLedger:
		return CoverageLedgerOnly
	case inMaster:
		return CoverageMasterOnly
	case inInvoices:
		return CoverageInvoiceOnly
	default:
		return CoverageUnknownPattern
	}
}

// =============================================================================
// COVERAGE REPORT
// =============================================================================

// Coverage report columns, in output order.
const (
	colInvoiceKey     = "Invoice_Key"
	colCoverageStatus = "Coverage_Status"
	colLedgerRows     = "Ledger_Rows"
	colMasterRows     = "Master_Rows"
	colInvoiceRows    = "Invoice_Rows"
	colLedgerSample   = "Ledger_Sample"
	colMasterSample   = "Master_Sample"
	colInvoiceSample  = "Invoice_Sample"
)

// descriptionAliases are the candidate columns holding a human-readable line
// description, used for the per-source sample fields.
var descriptionAliases = []string{
	"Description", "Narrative", "Details", "Memo", "Line Description",
}

// CoverageHeaders returns the coverage report's column order.
func CoverageHeaders() []string {
	return []string{
		colInvoiceKey, colCoverageStatus,
		colLedgerRows, colMasterRows, colInvoiceRows,
		colLedgerSample, colMasterSample, colInvoiceSample,
	}
}

// Coverage drives the classifier over the union of the three indexes' key
// sets and emits one row per key, sorted ascending by key for reproducible
// output. Each row carries the label, per-source row counts, and one sample
// description per source (first non-empty alias from the first matched
// record).
func Coverage(ledger, master, invoices *Index) *types.Table {
	union := make(map[string]struct{})
	for _, idx := range []*Index{ledger, master, invoices} {
		for k := range idx.KeySet() {
			union[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &types.Table{
		Headers: CoverageHeaders(),
		Rows:    make([]types.Record, 0, len(keys)),
		Label:   "coverage",
	}

	for _, key := range keys {
		ledgerRows := ledger.Lookup(key)
		masterRows := master.Lookup(key)
		invoiceRows := invoices.Lookup(key)

		label := Classify(len(ledgerRows) > 0, len(masterRows) > 0, len(invoiceRows) > 0)

		out.Rows = append(out.Rows, types.Record{
			colInvoiceKey:     key,
			colCoverageStatus: string(label),
			colLedgerRows:     strconv.Itoa(len(ledgerRows)),
			colMasterRows:     strconv.Itoa(len(masterRows)),
			colInvoiceRows:    strconv.Itoa(len(invoiceRows)),
			colLedgerSample:   firstSample(ledgerRows),
			colMasterSample:   firstSample(masterRows),
			colInvoiceSample:  firstSample(invoiceRows),
		})
	}

	return out
}

// firstSample resolves the description aliases against the first matched
// record only. Empty when nothing matched.
func firstSample(rows []types.Record) string {
	if len(rows) == 0 {
		return ""
	}
	return Resolve(rows[0], descriptionAliases)
}
