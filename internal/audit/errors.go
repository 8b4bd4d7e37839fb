package audit

import "errors"

var (
	ErrCaseIDRequired          = errors.New("case id is required")
	ErrInvalidActionType       = errors.New("invalid action type")
	ErrAppendFailed            = errors.New("failed to append audit entry")
	ErrStoreUnavailable        = errors.New("audit store unavailable")
	ErrChainIntegrityViolation = errors.New("audit chain integrity violation")
)
