package repository

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

type InsertCaseOptions struct {
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
	CreatedAt    time.Time
}

type UpdateCaseStatusOptions struct {
	ID        string
	Status    string
	UpdatedAt time.Time
}

type ListCasesOptions struct {
	ReporterID string
	County     string
	Status     string
	// MinScore filters the dashboard to the urgent band when set.
	MinScore int
	PagQuery paginator.PaginateQuery
}
