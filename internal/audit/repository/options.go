package repository

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

type InsertEntryOptions struct {
	ID         string
	CaseID     string
	ActionType string
	ActorID    string
	Details    map[string]interface{}
	PrevHash   string
	Hash       string
	CreatedAt  time.Time
}

type ListEntriesOptions struct {
	CaseID     string
	ActionType string
	ActorID    string
	PagQuery   paginator.PaginateQuery
}

type InsertReconciliationOptions struct {
	ID         string
	CaseID     string
	ActionType string
	ActorID    string
	Reason     string
	CreatedAt  time.Time
}
