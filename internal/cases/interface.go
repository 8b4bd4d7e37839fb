package cases

import (
	"context"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// GetCase returns one case. Reporters only see their own cases.
	GetCase(ctx context.Context, sc model.Scope, id string) (model.Case, error)
	// ListCases returns the dashboard feed, newest first. Reporters are
	// scoped to their own cases regardless of the requested filter.
	ListCases(ctx context.Context, sc model.Scope, input ListCasesInput) (ListCasesOutput, error)
	// Acknowledge moves a new case to acknowledged. The audit action is
	// cpo_ack or ngo_ack depending on the actor's role.
	Acknowledge(ctx context.Context, sc model.Scope, caseID string) (model.Case, error)
	// RecordAction logs a follow-up action and moves an acknowledged
	// case to in progress.
	RecordAction(ctx context.Context, sc model.Scope, input RecordActionInput) (model.Case, error)
	// Close finishes a case in progress.
	Close(ctx context.Context, sc model.Scope, input CloseInput) (model.Case, error)
	// MarkUnfounded finishes a case in progress as unfounded and counts
	// it against the reporter's unfounded ledger.
	MarkUnfounded(ctx context.Context, sc model.Scope, input MarkUnfoundedInput) (model.Case, error)
}

// Projector applies case events from the stream to derived state. It
// owns the spike counters; intake only publishes the events.
type Projector interface {
	// ProjectCaseCreated bumps the county+tag counters for a created
	// case and flags the case as a spike when a counter crosses the
	// threshold within the window.
	ProjectCaseCreated(ctx context.Context, event model.CaseEvent) error
}
