package repository

import "errors"

var (
	ErrTxBeginFailed      = errors.New("failed to begin transaction")
	ErrRecordFetchFailed  = errors.New("failed to fetch rate limit record")
	ErrRecordUpdateFailed = errors.New("failed to update rate limit record")
	ErrUnfoundedFailed    = errors.New("failed to write unfounded ledger entry")
)
