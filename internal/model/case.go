package model

import "time"

// Case status state machine: new -> acknowledged -> in_progress -> {closed, unfounded}.
const (
	CaseStatusNew          = "NEW"
	CaseStatusAcknowledged = "ACKNOWLEDGED"
	CaseStatusInProgress   = "IN_PROGRESS"
	CaseStatusClosed       = "CLOSED"
	CaseStatusUnfounded    = "UNFOUNDED"
)

// Case is a recorded incident case. The raw note never reaches this
// struct; only the redacted text is retained.
type Case struct {
	ID           string
	CaseCode     string
	ReporterID   string
	County       string
	AgeBand      string
	RiskTags     []string
	RedactedNote string
	RiskScore    int
	RiskReasons  []string
	Status       string
	IsSpike      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
