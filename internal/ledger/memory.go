package ledger

import (
	"context"

	apperrors "preetosbot/internal/errors"
)

// MemorySource serves a fixed Table. It backs tests and dry runs, and it is
// also what report computations receive once a real fetch has been taken:
// one snapshot per report, shared by every sub-computation.
type MemorySource struct {
	Table Table
	Err   error
}

// FetchRows implements Source.
func (m *MemorySource) FetchRows(ctx context.Context, sheet, cellRange string) (Table, error) {
	if m.Err != nil {
		return Table{}, m.Err
	}
	if m.Table.Empty() {
		return Table{}, apperrors.ErrNoData
	}
	return m.Table, nil
}
