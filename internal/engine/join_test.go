package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

func enrichSecondaries(t *testing.T, keyer *Keyer, attachments, issues []types.Record) []Secondary {
	t.Helper()
	return []Secondary{
		NewSecondary(SourceAttachment, &types.Table{Rows: attachments}, keyer, AttachmentSpec()),
		NewSecondary(SourceIssue, &types.Table{Rows: issues}, keyer, IssueSpec()),
	}
}

// Scenario: primary "A1" matches attachment keyed "a1" case-insensitively.
func TestJoinCaseInsensitiveMatch(t *testing.T) {
	keyer := NewKeyer()
	primary := &types.Table{
		Headers: []string{"Invoice ID", "Amount"},
		Rows:    []types.Record{{"Invoice ID": "A1", "Amount": "10"}},
	}
	attachments := []types.Record{{"Invoice ID": "a1", "Doc ID": "D1"}}

	out := Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, attachments, nil), &types.NopLogger{})

	require.Len(t, out.Rows, 1)
	row := out.Rows[0]
	assert.Equal(t, "10", row["Amount"])
	assert.Equal(t, "1", row["Enriched_Attachment_Count"])
	assert.Equal(t, "D1", row["Enriched_Attachment_Doc_IDs"])
	assert.Equal(t, "0", row["Enriched_Issue_Count"])
}

// Output row count always equals primary input row count, even for
// unkeyable primaries.
func TestJoinRowCountInvariant(t *testing.T) {
	keyer := NewKeyer()
	primary := &types.Table{
		Headers: []string{"Invoice ID", "Amount"},
		Rows: []types.Record{
			{"Invoice ID": "A1", "Amount": "10"},
			{"Amount": "20"}, // unkeyable
			{"Invoice ID": "B2", "Amount": "30"},
		},
	}

	out := Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, nil, nil), &types.NopLogger{})
	assert.Len(t, out.Rows, len(primary.Rows))

	// The unkeyable row carries the fixed empty enrichment defaults.
	row := out.Rows[1]
	assert.Equal(t, "20", row["Amount"])
	assert.Equal(t, "0", row["Enriched_Attachment_Count"])
	assert.Equal(t, "", row["Enriched_Attachment_Doc_IDs"])
	assert.Equal(t, "0", row["Enriched_Issue_Count"])
}

// An unkeyable secondary record must not match any primary row.
func TestJoinUnkeyableSecondaryNeverMatches(t *testing.T) {
	keyer := NewKeyer()
	primary := &types.Table{
		Headers: []string{"Invoice ID"},
		Rows:    []types.Record{{"Invoice ID": "A1"}},
	}
	attachments := []types.Record{{"Doc ID": "ORPHAN"}} // all alias columns empty

	out := Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, attachments, nil), &types.NopLogger{})
	assert.Equal(t, "0", out.Rows[0]["Enriched_Attachment_Count"])
	assert.Equal(t, "", out.Rows[0]["Enriched_Attachment_Doc_IDs"])
}

func TestJoinDoesNotMutatePrimary(t *testing.T) {
	keyer := NewKeyer()
	rec := types.Record{"Invoice ID": "A1"}
	primary := &types.Table{Headers: []string{"Invoice ID"}, Rows: []types.Record{rec}}
	attachments := []types.Record{{"Invoice ID": "A1", "Doc ID": "D1"}}

	Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, attachments, nil), &types.NopLogger{})

	assert.Equal(t, types.Record{"Invoice ID": "A1"}, rec)
}

func TestJoinHeaderOrderAndCollision(t *testing.T) {
	keyer := NewKeyer()
	// The primary already carries a column named like an enrichment field.
	primary := &types.Table{
		Headers: []string{"Invoice ID", "Enriched_Issue_Count", "Amount"},
		Rows: []types.Record{
			{"Invoice ID": "A1", "Enriched_Issue_Count": "manual", "Amount": "10"},
		},
	}
	issues := []types.Record{{"Invoice ID": "A1", "Issue": "overdue"}}

	out := Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, nil, issues), &types.NopLogger{})

	// Primary columns first in original order, enrichment appended in
	// declared order, colliding name dropped.
	assert.Equal(t, []string{
		"Invoice ID", "Enriched_Issue_Count", "Amount",
		"Enriched_Attachment_Count",
		"Enriched_Attachment_Doc_IDs",
		"Enriched_Attachment_File_Names",
		"Enriched_Attachment_Paths",
		"Enriched_Attachment_Download_Args",
		"Enriched_Issue_Flags",
	}, out.Headers)

	// The primary value survives the collision.
	assert.Equal(t, "manual", out.Rows[0]["Enriched_Issue_Count"])
	assert.Equal(t, "overdue", out.Rows[0]["Enriched_Issue_Flags"])
}

func TestJoinOneToMany(t *testing.T) {
	keyer := NewKeyer()
	primary := &types.Table{
		Headers: []string{"Invoice ID"},
		Rows:    []types.Record{{"Invoice ID": "A1"}},
	}
	attachments := []types.Record{
		{"Invoice ID": "A1", "Doc ID": "D2"},
		{"Invoice ID": "a1", "Doc ID": "D1"},
	}

	out := Join(primary, SourceInvoice, keyer, enrichSecondaries(t, keyer, attachments, nil), &types.NopLogger{})
	assert.Equal(t, "2", out.Rows[0]["Enriched_Attachment_Count"])
	assert.Equal(t, "D1; D2", out.Rows[0]["Enriched_Attachment_Doc_IDs"])
}
