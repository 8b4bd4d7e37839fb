package ratelimit

import "errors"

var (
	// ErrCheckFailed means the underlying store was unavailable. Callers
	// must not conflate it with a denial.
	ErrCheckFailed = errors.New("rate-limit check failed")
	// ErrNotAdmitted is returned by RecordAdmission when re-checking the
	// limits under the lock shows a concurrent submission already used
	// the remaining allowance.
	ErrNotAdmitted = errors.New("admission no longer allowed")
	// ErrUserIDRequired is a caller validation error.
	ErrUserIDRequired = errors.New("user_id is required")
)
