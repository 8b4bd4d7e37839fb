package repository

import "errors"

var (
	ErrTxBeginFailed    = errors.New("failed to begin transaction")
	ErrCaseNotFound     = errors.New("case not found")
	ErrCaseInsertFailed = errors.New("failed to insert case")
	ErrCaseUpdateFailed = errors.New("failed to update case")
	ErrCaseFetchFailed  = errors.New("failed to fetch cases")
)
