// =============================================================================
// Invoice Reconciliation - Field Resolver & Key Extractor
// =============================================================================
//
// Upstream exports disagree on column naming: the same invoice identifier
// arrives as "Invoice ID", "InvoiceID", "Xero number" and so on depending on
// which system (and which year) produced the file. This module resolves those
// alias chains into one canonical join key per row.
//
// The alias precedence per source kind is a configuration contract with the
// upstream exports. Changing the order changes which column wins when a row
// carries more than one candidate, so the tables below must stay in sync with
// what the masters actually emit.
//
// =============================================================================

package engine

import (
	"strings"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// =============================================================================
// SOURCE KINDS
// =============================================================================

// SourceKind identifies which upstream export a record came from.
// Each kind has its own alias precedence list.
type SourceKind string

const (
	// SourceInvoice is the invoice master export (2016_Master_Invoices etc.).
	SourceInvoice SourceKind = "invoice"

	// SourceAttachment is the attachments master export.
	SourceAttachment SourceKind = "attachment"

	// SourceIssue is the issue-tracking export.
	SourceIssue SourceKind = "issue"

	// SourceLedger is the accounting ledger export.
	SourceLedger SourceKind = "ledger"

	// SourceMasterFinancial is the master financials export.
	SourceMasterFinancial SourceKind = "masterfinancial"
)

// =============================================================================
// ALIAS TABLES
// =============================================================================

// defaultAliases holds the ordered candidate column names per source kind.
// Order encodes priority: the first alias that resolves to a non-empty value
// wins. These lists mirror the headers the upstream masters have actually
// shipped over the years.
var defaultAliases = map[SourceKind][]string{
	SourceInvoice: {
		"Invoice ID", "InvoiceID", "Invoice Id",
		"Xero number", "Invoice Number", "Invoice",
	},
	SourceAttachment: {
		"Invoice ID", "InvoiceID", "Invoice Id",
		"Xero number", "Invoice Number", "Invoice",
	},
	SourceIssue: {
		"Invoice ID", "InvoiceID", "Invoice Id",
		"Key",
	},
	SourceLedger: {
		"Invoice ID", "InvoiceID", "Invoice Id",
		"Xero number", "Invoice Number", "Invoice",
		"Reference",
	},
	SourceMasterFinancial: {
		"Invoice ID", "InvoiceID", "Invoice Id",
		"Xero number", "Invoice Number", "Invoice",
	},
}

// =============================================================================
// FIELD RESOLVER
// =============================================================================

// Resolve returns the trimmed value of the first alias that is present and
// non-empty in the record. Absent columns and blank values are treated
// uniformly as empty; Resolve never fails.
func Resolve(rec types.Record, aliases []string) string {
	for _, alias := range aliases {
		if v := types.Norm(rec[alias]); v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// KEY EXTRACTOR
// =============================================================================

// Keyer derives canonical join keys. It starts from the built-in alias
// tables and can be extended per kind from the job configuration without
// touching code.
type Keyer struct {
	aliases map[SourceKind][]string
}

// NewKeyer returns a Keyer with the built-in alias precedence per kind.
func NewKeyer() *Keyer {
	k := &Keyer{aliases: make(map[SourceKind][]string, len(defaultAliases))}
	for kind, list := range defaultAliases {
		k.aliases[kind] = append([]string(nil), list...)
	}
	return k
}

// Extend appends extra alias columns for a kind at lowest priority.
// Duplicate names are ignored so config overlap with the defaults is harmless.
func (k *Keyer) Extend(kind SourceKind, extra ...string) {
	known := make(map[string]bool, len(k.aliases[kind]))
	for _, a := range k.aliases[kind] {
		known[a] = true
	}
	for _, a := range extra {
		a = types.Norm(a)
		if a == "" || known[a] {
			continue
		}
		k.aliases[kind] = append(k.aliases[kind], a)
		known[a] = true
	}
}

// Aliases returns the current alias precedence list for a kind.
func (k *Keyer) Aliases(kind SourceKind) []string {
	return k.aliases[kind]
}

// Key derives the canonical join key for a record: first resolvable alias
// for the kind, trimmed and upper-cased. Returns "" when no alias resolves;
// such records are unkeyable and excluded from indexes.
func (k *Keyer) Key(rec types.Record, kind SourceKind) string {
	return strings.ToUpper(Resolve(rec, k.aliases[kind]))
}

// KeyFunc returns the key function for a kind, for use with BuildIndex.
func (k *Keyer) KeyFunc(kind SourceKind) func(types.Record) string {
	return func(rec types.Record) string {
		return k.Key(rec, kind)
	}
}

// ExtractKey derives a join key using the built-in alias tables only.
func ExtractKey(rec types.Record, kind SourceKind) string {
	return strings.ToUpper(Resolve(rec, defaultAliases[kind]))
}
