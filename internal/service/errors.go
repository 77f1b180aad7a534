package service

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable wraps transaction-layer failures (begin/commit,
	// placeholder-user creation). Safe to retry the whole operation.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidDate marks a daily-activity row whose date string does not
	// parse. Fatal to the enclosing import.
	ErrInvalidDate = errors.New("invalid date")

	ErrNotFound = errors.New("not found")
)

// RowError reports the first row that failed during an import, which
// collection it belonged to, and how many rows had been staged before the
// abort. Staged rows are rolled back; the count is diagnostic only.
type RowError struct {
	Collection string
	RowID      string
	Staged     int
	Err        error
}

func (e *RowError) Error() string {
	if e.RowID != "" {
		return fmt.Sprintf("import %s row %s (after %d rows): %v", e.Collection, e.RowID, e.Staged, e.Err)
	}
	return fmt.Sprintf("import %s (after %d rows): %v", e.Collection, e.Staged, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
