package cases

import "errors"

var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAction     = errors.New("invalid follow-up action")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrStoreUnavailable  = errors.New("case store unavailable")
)
