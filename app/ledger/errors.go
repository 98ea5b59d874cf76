package ledger

import "errors"

// Sentinel errors reported back to callers. Anything else coming out of a
// ledger operation is a storage failure.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid budget operation")
)
