package intake

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

type SubmitInput struct {
	County   string
	AgeBand  string
	RiskTags []string
	Note     string
}

// Denial explains a rate limit rejection to the submitter.
type Denial struct {
	Reason        string
	NextAllowedAt *time.Time
}

type SubmitOutput struct {
	Admitted bool
	// Denial is set when Admitted is false.
	Denial *Denial
	// Case and RiskLevel are set when Admitted is true.
	Case      model.Case
	RiskLevel string
}

type PreviewInput struct {
	Note string
}

type PreviewOutput struct {
	Redacted      string
	Labels        []string
	HasRedactions bool
}

// UrgentNotification is the payload queued for operator dispatch when
// a case scores in the critical band.
type UrgentNotification struct {
	CaseID    string    `json:"case_id"`
	CaseCode  string    `json:"case_code"`
	County    string    `json:"county"`
	RiskScore int       `json:"risk_score"`
	RiskLevel string    `json:"risk_level"`
	CreatedAt time.Time `json:"created_at"`
}
