// =============================================================================
// Invoice Reconciliation - Aggregator
// =============================================================================
//
// Reduces the records matched under one join key into a small set of summary
// fields. Every aggregation is declared as an AggSpec (rule table) and
// executed by one generic implementation, so adding a secondary source means
// declaring a spec, not writing another reduction loop.
//
// Determinism contract: count, joined and flag fields are invariant under
// permutation of the matched list (values are deduplicated and sorted before
// joining). Sample fields are the exception: they read the first matched
// record only, so they depend on input row order. That asymmetry is part of
// the output contract and must not be "fixed".
//
// =============================================================================

package engine

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

// joinSeparator joins deduplicated values in joined-string fields.
const joinSeparator = "; "

// =============================================================================
// AGGREGATION SPEC
// =============================================================================

// ValueFormat names an optional per-value transformation applied to a joined
// field after sorting.
type ValueFormat string

const (
	// FormatNone emits the value as-is.
	FormatNone ValueFormat = ""

	// FormatDownloadArg wraps a Dropbox path in the compact JSON argument
	// expected by the Dropbox-API-Arg header, e.g. {"path":"/sona/..."}.
	FormatDownloadArg ValueFormat = "download_arg"
)

// JoinedField declares one deduplicated, sorted, joined output field.
type JoinedField struct {
	// Name is the output column name.
	Name string

	// Aliases are the candidate sub-columns per matched record,
	// first-non-empty wins (same policy as the field resolver).
	Aliases []string

	// Format is an optional per-value transformation.
	Format ValueFormat
}

// SampleField declares a "first non-empty sample" output field. It reads the
// first matched record only, checking aliases in priority order.
type SampleField struct {
	Name    string
	Aliases []string
}

// AggSpec declares the full output contract of one aggregation: which fields
// exist, what they are named, and how each is computed. The spec fully
// determines Aggregate's behavior; there is no hidden state.
type AggSpec struct {
	// CountField, when set, receives the number of matched records.
	CountField string

	// Joined fields, emitted in declared order.
	Joined []JoinedField

	// Samples fields, emitted after the joined fields.
	Samples []SampleField

	// FlagField, when set, receives "Y" if any record matched, else "N".
	FlagField string
}

// Fields returns the output column names in declared order. The output
// writer appends these after the primary columns, so the order here is the
// header contract.
func (s AggSpec) Fields() []string {
	var fields []string
	if s.CountField != "" {
		fields = append(fields, s.CountField)
	}
	for _, j := range s.Joined {
		fields = append(fields, j.Name)
	}
	for _, smp := range s.Samples {
		fields = append(fields, smp.Name)
	}
	if s.FlagField != "" {
		fields = append(fields, s.FlagField)
	}
	return fields
}

// Empty returns the fixed zero result: every declared field present, counts
// "0", strings blank, flags "N". Never a partial mapping.
func (s AggSpec) Empty() types.Record {
	out := make(types.Record)
	if s.CountField != "" {
		out[s.CountField] = "0"
	}
	for _, j := range s.Joined {
		out[j.Name] = ""
	}
	for _, smp := range s.Samples {
		out[smp.Name] = ""
	}
	if s.FlagField != "" {
		out[s.FlagField] = "N"
	}
	return out
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate reduces the matched records into the spec's summary fields.
// A nil/empty match list yields Empty().
func (s AggSpec) Aggregate(matched []types.Record) types.Record {
	if len(matched) == 0 {
		return s.Empty()
	}

	out := make(types.Record)

	if s.CountField != "" {
		out[s.CountField] = strconv.Itoa(len(matched))
	}

	for _, j := range s.Joined {
		out[j.Name] = joinValues(matched, j)
	}

	// Samples come from the first matched record only.
	first := matched[0]
	for _, smp := range s.Samples {
		out[smp.Name] = Resolve(first, smp.Aliases)
	}

	if s.FlagField != "" {
		out[s.FlagField] = "Y"
	}

	return out
}

// joinValues collects the field's value from every matched record,
// deduplicates as a set, drops empties, sorts ascending, formats, and joins.
func joinValues(matched []types.Record, field JoinedField) string {
	seen := make(map[string]struct{})
	for _, rec := range matched {
		if v := Resolve(rec, field.Aliases); v != "" {
			seen[v] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return ""
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	if field.Format != FormatNone {
		for i, v := range values {
			values[i] = formatValue(v, field.Format)
		}
	}

	joined := values[0]
	for _, v := range values[1:] {
		joined += joinSeparator + v
	}
	return joined
}

func formatValue(v string, format ValueFormat) string {
	switch format {
	case FormatDownloadArg:
		arg, err := json.Marshal(struct {
			Path string `json:"path"`
		}{Path: v})
		if err != nil {
			// Marshalling a plain string cannot fail; keep the raw value
			// if it somehow does.
			return v
		}
		return string(arg)
	default:
		return v
	}
}

// =============================================================================
// BUILT-IN SPECS
// =============================================================================

// attachmentPathAliases are the candidate columns holding the Dropbox path
// of an attachment, across export vintages.
var attachmentPathAliases = []string{
	"path_lower", "Path_Lower", "dbx_path_lower", "Dropbox path lower", "path_display",
}

// AttachmentSpec declares the attachment enrichment fields attached to each
// invoice row.
func AttachmentSpec() AggSpec {
	return AggSpec{
		CountField: "Enriched_Attachment_Count",
		Joined: []JoinedField{
			{
				Name:    "Enriched_Attachment_Doc_IDs",
				Aliases: []string{"Doc ID", "DocID", "Attachment ID", "AttachmentId", "Id"},
			},
			{
				Name:    "Enriched_Attachment_File_Names",
				Aliases: []string{"name", "Name", "file_name", "File Name", "FileName"},
			},
			{
				Name:    "Enriched_Attachment_Paths",
				Aliases: attachmentPathAliases,
			},
			{
				Name:    "Enriched_Attachment_Download_Args",
				Aliases: attachmentPathAliases,
				Format:  FormatDownloadArg,
			},
		},
	}
}

// IssueSpec declares the issue enrichment fields attached to each invoice row.
func IssueSpec() AggSpec {
	return AggSpec{
		CountField: "Enriched_Issue_Count",
		Joined: []JoinedField{
			{
				Name:    "Enriched_Issue_Flags",
				Aliases: []string{"Issue_Flag", "Issue flag", "Issue Flag", "Issue", "Status"},
			},
		},
	}
}
