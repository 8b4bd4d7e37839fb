package audit

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
)

// AppendInput carries one action to be chained.
type AppendInput struct {
	CaseID     string
	ActionType string
	ActorID    string
	Details    map[string]interface{}
	// Now pins the entry timestamp; zero means time.Now.
	Now time.Time
}

// VerifyResult reports a full chain walk.
type VerifyResult struct {
	Valid   bool
	Checked int64
	// FirstBrokenID is the ID of the earliest entry whose stored hash
	// no longer matches its recomputed one, or whose prev_hash does not
	// match its predecessor. Empty when the chain is intact.
	FirstBrokenID  string
	FirstBrokenSeq int64
}

type ListEntriesInput struct {
	CaseID     string
	ActionType string
	ActorID    string
	PagQuery   paginator.PaginateQuery
}

type ListEntriesOutput struct {
	Entries   []model.AuditEntry
	Paginator paginator.Paginator
}

// TrustSeal is the public integrity summary shown to anyone, without
// authentication and without case data.
type TrustSeal struct {
	LatestHash       string    `json:"latest_hash"`
	MonthActionCount int64     `json:"month_action_count"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type RecordReconciliationInput struct {
	CaseID     string
	ActionType string
	ActorID    string
	Reason     string
}

type ReconcileOutput struct {
	Pending  int
	Repaired int
	Resolved int
}

var actionTypes = map[string]struct{}{
	model.ActionCreated:           {},
	model.ActionCPOAck:            {},
	model.ActionNGOAck:            {},
	model.ActionCallGuardian:      {},
	model.ActionSchoolVisitBooked: {},
	model.ActionEscortToClinic:    {},
	model.ActionClosed:            {},
	model.ActionMarkedUnfounded:   {},
}

// ValidActionType reports whether t is part of the audit vocabulary.
func ValidActionType(t string) bool {
	_, ok := actionTypes[t]
	return ok
}
