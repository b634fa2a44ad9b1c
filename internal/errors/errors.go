// Package errors defines the error conditions shared across the report
// pipeline. Callers wrap these sentinels with fmt.Errorf("...: %w", err) and
// test for them with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates the ledger source could not be reached
	// or refused the read. Retry policy belongs to the source adapter's
	// caller, never to the report core.
	ErrSourceUnavailable = errors.New("ledger source unavailable")

	// ErrNoData indicates the ledger range came back without headers or
	// rows. Reported as a condition, not a failure of the pipeline.
	ErrNoData = errors.New("no ledger data")
)

// SourceUnavailable wraps an underlying fetch error as ErrSourceUnavailable.
func SourceUnavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
}

// IsSourceUnavailable reports whether err is a ledger availability failure.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsNoData reports whether err is the empty-ledger condition.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
