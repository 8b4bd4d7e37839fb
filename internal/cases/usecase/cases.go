package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/redaction"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// GetCase returns one case. Reporters asking for someone else's case
// get not-found, so case existence never leaks.
func (uc *implUseCase) GetCase(ctx context.Context, sc model.Scope, id string) (model.Case, error) {
	c, err := uc.repo.GetCase(ctx, id)
	if err != nil {
		return model.Case{}, mapRepoErr(err)
	}
	if sc.Role == model.RoleReporter && c.ReporterID != sc.UserID {
		return model.Case{}, cases.ErrCaseNotFound
	}
	return c, nil
}

func (uc *implUseCase) ListCases(ctx context.Context, sc model.Scope, input cases.ListCasesInput) (cases.ListCasesOutput, error) {
	input.PagQuery.Adjust()

	opts := repository.ListCasesOptions{
		County:   input.County,
		Status:   input.Status,
		MinScore: input.MinScore,
		PagQuery: input.PagQuery,
	}
	if sc.Role == model.RoleReporter {
		opts.ReporterID = sc.UserID
	}

	list, err := uc.repo.ListCases(ctx, opts)
	if err != nil {
		return cases.ListCasesOutput{}, cases.ErrStoreUnavailable
	}
	total, err := uc.repo.CountCases(ctx, opts)
	if err != nil {
		return cases.ListCasesOutput{}, cases.ErrStoreUnavailable
	}

	return cases.ListCasesOutput{
		Cases: list,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(list)),
			PerPage:     input.PagQuery.Limit,
			CurrentPage: input.PagQuery.Page,
		},
	}, nil
}

func (uc *implUseCase) Acknowledge(ctx context.Context, sc model.Scope, caseID string) (model.Case, error) {
	var actionType string
	switch sc.Role {
	case model.RoleOfficer, model.RoleAdmin:
		actionType = model.ActionCPOAck
	case model.RoleNGO:
		actionType = model.ActionNGOAck
	default:
		return model.Case{}, cases.ErrPermissionDenied
	}

	return uc.mutate(ctx, sc, mutation{
		caseID:     caseID,
		from:       []string{model.CaseStatusNew},
		to:         model.CaseStatusAcknowledged,
		actionType: actionType,
		details:    map[string]interface{}{"role": sc.Role},
	})
}

func (uc *implUseCase) RecordAction(ctx context.Context, sc model.Scope, input cases.RecordActionInput) (model.Case, error) {
	if err := requireResponder(sc); err != nil {
		return model.Case{}, err
	}
	if !cases.ValidFollowUpAction(input.ActionType) {
		return model.Case{}, cases.ErrInvalidAction
	}

	return uc.mutate(ctx, sc, mutation{
		caseID:     input.CaseID,
		from:       []string{model.CaseStatusAcknowledged, model.CaseStatusInProgress},
		to:         model.CaseStatusInProgress,
		actionType: input.ActionType,
		details:    noteDetails(input.Note),
	})
}

func (uc *implUseCase) Close(ctx context.Context, sc model.Scope, input cases.CloseInput) (model.Case, error) {
	if err := requireResponder(sc); err != nil {
		return model.Case{}, err
	}

	return uc.mutate(ctx, sc, mutation{
		caseID:     input.CaseID,
		from:       []string{model.CaseStatusInProgress},
		to:         model.CaseStatusClosed,
		actionType: model.ActionClosed,
		details:    noteDetails(input.Note),
	})
}

// MarkUnfounded finishes the case and charges it to the reporter's
// unfounded ledger in the same transaction, so the case outcome and
// the soft-block accounting cannot diverge.
func (uc *implUseCase) MarkUnfounded(ctx context.Context, sc model.Scope, input cases.MarkUnfoundedInput) (model.Case, error) {
	if err := requireResponder(sc); err != nil {
		return model.Case{}, err
	}

	return uc.mutate(ctx, sc, mutation{
		caseID:     input.CaseID,
		from:       []string{model.CaseStatusInProgress},
		to:         model.CaseStatusUnfounded,
		actionType: model.ActionMarkedUnfounded,
		details:    noteDetails(input.Note),
		extra: func(ctx context.Context, tx pkgpostgre.Tx, c model.Case, now time.Time) error {
			if err := uc.ratelimit.RecordUnfoundedInTx(ctx, tx, ratelimit.RecordUnfoundedInput{
				UserID: c.ReporterID,
				CaseID: c.ID,
				Now:    now,
			}); err != nil {
				uc.l.Errorf(ctx, "cases.usecase.MarkUnfounded: Failed to record unfounded report: %v", err)
				return cases.ErrStoreUnavailable
			}
			return nil
		},
	})
}

// mutation is one status transition plus its audit entry.
type mutation struct {
	caseID     string
	from       []string
	to         string
	actionType string
	details    map[string]interface{}
	extra      func(ctx context.Context, tx pkgpostgre.Tx, c model.Case, now time.Time) error
}

// mutate runs the shared transition discipline: lock the case row,
// check the state machine, update the status, and append exactly one
// audit entry, all in one transaction.
func (uc *implUseCase) mutate(ctx context.Context, sc model.Scope, m mutation) (model.Case, error) {
	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return model.Case{}, cases.ErrStoreUnavailable
	}
	defer func() { _ = tx.Rollback() }()

	c, err := uc.repo.GetCaseForUpdate(ctx, tx, m.caseID)
	if err != nil {
		return model.Case{}, mapRepoErr(err)
	}

	allowed := false
	for _, s := range m.from {
		if c.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return model.Case{}, cases.ErrInvalidTransition
	}

	now := time.Now()
	if err := uc.repo.UpdateCaseStatus(ctx, tx, repository.UpdateCaseStatusOptions{
		ID:        c.ID,
		Status:    m.to,
		UpdatedAt: now,
	}); err != nil {
		return model.Case{}, mapRepoErr(err)
	}

	if _, err := uc.auditUC.AppendInTx(ctx, tx, audit.AppendInput{
		CaseID:     c.ID,
		ActionType: m.actionType,
		ActorID:    sc.UserID,
		Details:    m.details,
		Now:        now,
	}); err != nil {
		uc.l.Errorf(ctx, "cases.usecase.mutate: Failed to append audit entry for case %s: %v", c.ID, err)
		return model.Case{}, cases.ErrStoreUnavailable
	}

	if m.extra != nil {
		if err := m.extra(ctx, tx, c, now); err != nil {
			return model.Case{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "cases.usecase.mutate: Failed to commit transition for case %s: %v", c.ID, err)
		return model.Case{}, cases.ErrStoreUnavailable
	}

	c.Status = m.to
	c.UpdatedAt = now
	return c, nil
}

// requireResponder gates mutations to officer, NGO and admin actors.
func requireResponder(sc model.Scope) error {
	switch sc.Role {
	case model.RoleOfficer, model.RoleNGO, model.RoleAdmin:
		return nil
	default:
		return cases.ErrPermissionDenied
	}
}

// noteDetails redacts the free-text note before it can reach the audit
// trail.
func noteDetails(note string) map[string]interface{} {
	if note == "" {
		return nil
	}
	return map[string]interface{}{"note": redaction.Redact(note)}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrCaseNotFound) {
		return cases.ErrCaseNotFound
	}
	return cases.ErrStoreUnavailable
}
