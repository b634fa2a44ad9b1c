package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "preetosbot/internal/errors"
)

func TestSplitTableSkipsBannerRows(t *testing.T) {
	values := [][]string{
		{"PREETOS ORDERS"},
		{},
		{"filters"},
		{"Timestamp", "Channel", "Order Date", "Name"},
		{"x", "FB", "August 01, 2025", "Ana"},
		{"y", "IG", "August 02, 2025", "Ben"},
	}

	table := splitTable(values)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Order Date", table.Headers[2])
	assert.Equal(t, "Ana", table.Rows[0][3])
}

func TestSplitTableTooFewRows(t *testing.T) {
	table := splitTable([][]string{{"banner"}, {"banner"}, {"headers?"}})
	assert.True(t, table.Empty())
}

func TestColumnIndex(t *testing.T) {
	table := Table{Headers: []string{"Timestamp", " Order Date ", "Name"}}

	assert.Equal(t, 1, table.ColumnIndex("Order Date"))
	assert.Equal(t, 2, table.ColumnIndex("Name"))
	assert.Equal(t, -1, table.ColumnIndex("Price"))
	assert.Equal(t, -1, table.ColumnIndex("order date"), "matching is case-sensitive")
}

func TestMemorySourceReturnsSnapshot(t *testing.T) {
	want := Table{Headers: []string{"A"}, Rows: [][]string{{"1"}}}
	src := &MemorySource{Table: want}

	got, err := src.FetchRows(context.Background(), "ORDER", "A:AF")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemorySourceEmptyIsNoData(t *testing.T) {
	src := &MemorySource{}

	_, err := src.FetchRows(context.Background(), "ORDER", "A:AF")

	require.Error(t, err)
	assert.True(t, apperrors.IsNoData(err))
}

func TestMemorySourceErrorWins(t *testing.T) {
	src := &MemorySource{Err: apperrors.SourceUnavailable(context.DeadlineExceeded)}

	_, err := src.FetchRows(context.Background(), "ORDER", "A:AF")

	require.Error(t, err)
	assert.True(t, apperrors.IsSourceUnavailable(err))
}
