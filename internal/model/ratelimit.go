package model

import "time"

// RateLimitRecord tracks per-reporter submission counters. One row per
// user, created lazily on first report attempt, never deleted.
type RateLimitRecord struct {
	UserID        string
	AlertsToday   int
	LastAlertAt   *time.Time
	IsSoftBlocked bool
	UpdatedAt     time.Time
}

// UnfoundedReport is one entry in the timestamped unfounded ledger.
// Rows older than the trailing window stop counting toward the
// soft-block threshold without any mutation.
type UnfoundedReport struct {
	ID         string
	UserID     string
	CaseID     string
	RecordedAt time.Time
}
