// Package ledger provides read access to the Google Sheets order ledger.
//
// The ledger is consumed through the Source capability interface so the
// report core never touches the Sheets API directly. Two concrete adapters
// exist: one authenticating with a service-account credentials file (local
// runs) and one building credentials from environment-injected key material
// (hosted deploys). The adapter is selected by configuration.
package ledger

import (
	"context"
	"strings"
)

// Table is one immutable snapshot of a ledger range: the header row plus
// every data row beneath it. Rows are ragged; cells past a row's end are
// treated as empty by consumers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the snapshot carries neither headers nor rows.
func (t Table) Empty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// ColumnIndex returns the position of the named header, or -1 when absent.
// Matching is exact after trimming, mirroring how the sheet is maintained.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Source is the ledger read capability. Implementations must return the
// full requested range in one call; the core assumes no pagination.
type Source interface {
	// FetchRows reads the given range of a sheet tab and splits it into
	// header and data rows. A fetch failure is reported as a source
	// availability error; an empty range is reported as a no-data error.
	FetchRows(ctx context.Context, sheet, cellRange string) (Table, error)
}

// headerRowIndex is the zero-based row holding column names. The ledger
// reserves the first three rows for banners and filter controls.
const headerRowIndex = 3

// splitTable converts a raw Sheets value grid into a Table, skipping the
// banner rows above the header.
func splitTable(values [][]string) Table {
	if len(values) <= headerRowIndex {
		return Table{}
	}
	return Table{
		Headers: values[headerRowIndex],
		Rows:    values[headerRowIndex+1:],
	}
}
