package repository

import "errors"

var (
	ErrTxBeginFailed        = errors.New("failed to begin transaction")
	ErrLockFailed           = errors.New("failed to acquire chain lock")
	ErrEntryInsertFailed    = errors.New("failed to insert audit entry")
	ErrEntryFetchFailed     = errors.New("failed to fetch audit entries")
	ErrReconciliationFailed = errors.New("failed to write reconciliation record")
)
