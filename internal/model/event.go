package model

import "time"

// Kafka event types on the case events topic.
const (
	EventCaseCreated = "case.created"
)

// CaseEvent is the envelope published to the case events topic.
type CaseEvent struct {
	EventType string    `json:"event_type"`
	CaseID    string    `json:"case_id"`
	CaseCode  string    `json:"case_code"`
	County    string    `json:"county"`
	RiskTags  []string  `json:"risk_tags"`
	RiskScore int       `json:"risk_score"`
	CreatedAt time.Time `json:"created_at"`
}
