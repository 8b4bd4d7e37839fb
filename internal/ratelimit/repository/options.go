package repository

import "time"

type UpdateRecordOptions struct {
	UserID        string
	AlertsToday   int
	LastAlertAt   *time.Time
	IsSoftBlocked bool
}

type InsertUnfoundedOptions struct {
	ID         string
	UserID     string
	CaseID     string
	RecordedAt time.Time
}
