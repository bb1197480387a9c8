package csvsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/invoice-reconciliation/internal/types"
)

func TestParseStrict(t *testing.T) {
	data := []byte("Invoice ID,Amount,Notes\nA1,10,\"hello, world\"\nB2,20,plain\n")

	table, err := Parse(data, "invoices", &types.NopLogger{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Invoice ID", "Amount", "Notes"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "hello, world", table.Rows[0]["Notes"])
	assert.Equal(t, "B2", table.Rows[1]["Invoice ID"])
	assert.Equal(t, 0, table.Dropped)
}

func TestParseShortRowPadded(t *testing.T) {
	data := []byte("A,B,C\n1,2\n")

	table, err := Parse(data, "test", &types.NopLogger{})
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2", table.Rows[0]["B"])
	assert.Equal(t, "", table.Rows[0]["C"])
}

func TestParseSkipsAllEmptyRows(t *testing.T) {
	data := []byte("A,B\n1,2\n,\n3,4\n")

	table, err := Parse(data, "test", &types.NopLogger{})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil, "test", &types.NopLogger{})
	assert.Error(t, err)
}

func TestParseValuesTrimmed(t *testing.T) {
	data := []byte(" Invoice ID , Amount \n A1 , 10 \n")

	table, err := Parse(data, "test", &types.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoice ID", "Amount"}, table.Headers)
	assert.Equal(t, "A1", table.Rows[0]["Invoice ID"])
}

func TestParseEmptyHeaderNamed(t *testing.T) {
	data := []byte("A,,C\n1,2,3\n")

	table, err := Parse(data, "test", &types.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Column_2", "C"}, table.Headers)
	assert.Equal(t, "2", table.Rows[0]["Column_2"])
}

// Scenario: a data line with 3 fields against a 4-column header is dropped
// by the fallback parser; the drop is counted, no error propagates.
func TestFallbackDropsMalformedArity(t *testing.T) {
	text := "A,B,C,D\n1,2,3,4\nx,y,z\n5,6,7,8\n"

	table, err := parseFallback(text, "test")
	require.NoError(t, err)

	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.Dropped)
	assert.Equal(t, "8", table.Rows[1]["D"])
}

func TestFallbackTrimsFields(t *testing.T) {
	text := "A, B\n 1 , 2 \n"

	table, err := parseFallback(text, "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Headers)
	assert.Equal(t, "1", table.Rows[0]["A"])
	assert.Equal(t, "2", table.Rows[0]["B"])
}

func TestFallbackSkipsBlankLines(t *testing.T) {
	text := "A,B\n\n1,2\n   \n3,4\n"

	table, err := parseFallback(text, "test")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 0, table.Dropped)
}

func TestFallbackNoContent(t *testing.T) {
	_, err := parseFallback("   \n  \n", "test")
	assert.Error(t, err)
}
