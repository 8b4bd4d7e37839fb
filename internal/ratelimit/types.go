package ratelimit

import "time"

// Denial reasons surfaced to the submitter.
const (
	ReasonSoftBlocked = "Account temporarily restricted due to multiple unfounded reports"
	ReasonDailyLimit  = "Daily limit of 3 reports reached"
	ReasonMinInterval = "Please wait 10 minutes between reports"
)

type AdmitInput struct {
	UserID string
	Now    time.Time
}

type RecordAdmissionInput struct {
	UserID string
	Now    time.Time
}

type RecordUnfoundedInput struct {
	UserID string
	CaseID string
	Now    time.Time
}

// Decision is the admission outcome. Allowed=false is a legitimate
// business decision, distinct from infrastructure failure.
type Decision struct {
	Allowed       bool
	Reason        string
	NextAllowedAt *time.Time
	AlertsToday   int
	IsSoftBlocked bool
}
