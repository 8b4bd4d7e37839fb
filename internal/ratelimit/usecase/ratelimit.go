package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/repository"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/util"
)

// Admit evaluates the admission precedence under the user's row lock:
// first-ever report, soft block, daily cap, minimum interval, allow.
func (uc *implUseCase) Admit(ctx context.Context, input ratelimit.AdmitInput) (ratelimit.Decision, error) {
	if input.UserID == "" {
		return ratelimit.Decision{}, ratelimit.ErrUserIDRequired
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return ratelimit.Decision{}, ratelimit.ErrCheckFailed
	}
	defer func() { _ = tx.Rollback() }()

	rec, created, err := uc.repo.GetRecordForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return ratelimit.Decision{}, ratelimit.ErrCheckFailed
	}

	if created {
		if err := tx.Commit(); err != nil {
			uc.l.Errorf(ctx, "ratelimit.usecase.Admit: Failed to commit: %v", err)
			return ratelimit.Decision{}, ratelimit.ErrCheckFailed
		}
		return ratelimit.Decision{Allowed: true}, nil
	}

	if uc.rollOverDay(rec, now) {
		if err := uc.persistRecord(ctx, tx, rec); err != nil {
			return ratelimit.Decision{}, ratelimit.ErrCheckFailed
		}
	}

	decision := uc.evaluate(rec, now)

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "ratelimit.usecase.Admit: Failed to commit: %v", err)
		return ratelimit.Decision{}, ratelimit.ErrCheckFailed
	}
	return decision, nil
}

// RecordAdmission increments the counters. The limits are re-checked
// under the lock so that of two submissions racing at a boundary, at
// most one records.
func (uc *implUseCase) RecordAdmission(ctx context.Context, input ratelimit.RecordAdmissionInput) error {
	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}
	defer func() { _ = tx.Rollback() }()

	if err := uc.RecordAdmissionInTx(ctx, tx, input); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "ratelimit.usecase.RecordAdmission: Failed to commit: %v", err)
		return ratelimit.ErrCheckFailed
	}
	return nil
}

// RecordAdmissionInTx records an admission inside the caller's
// transaction. The caller commits; rolling back also undoes the
// counter increment.
func (uc *implUseCase) RecordAdmissionInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordAdmissionInput) error {
	if input.UserID == "" {
		return ratelimit.ErrUserIDRequired
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	rec, _, err := uc.repo.GetRecordForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}

	uc.rollOverDay(rec, now)
	if d := uc.evaluate(rec, now); !d.Allowed {
		return ratelimit.ErrNotAdmitted
	}

	rec.AlertsToday++
	rec.LastAlertAt = &now
	if err := uc.persistRecord(ctx, tx, rec); err != nil {
		return ratelimit.ErrCheckFailed
	}
	return nil
}

// RecordUnfounded appends a ledger row and recomputes the trailing
// window count. Only rows inside the window count toward the soft
// block; older ones age out without mutation.
func (uc *implUseCase) RecordUnfounded(ctx context.Context, input ratelimit.RecordUnfoundedInput) error {
	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}
	defer func() { _ = tx.Rollback() }()

	if err := uc.RecordUnfoundedInTx(ctx, tx, input); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "ratelimit.usecase.RecordUnfounded: Failed to commit: %v", err)
		return ratelimit.ErrCheckFailed
	}
	return nil
}

// RecordUnfoundedInTx records an unfounded outcome inside the caller's
// transaction.
func (uc *implUseCase) RecordUnfoundedInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordUnfoundedInput) error {
	if input.UserID == "" {
		return ratelimit.ErrUserIDRequired
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	rec, _, err := uc.repo.GetRecordForUpdate(ctx, tx, input.UserID)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}

	if err := uc.repo.InsertUnfounded(ctx, tx, repository.InsertUnfoundedOptions{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		CaseID:     input.CaseID,
		RecordedAt: now,
	}); err != nil {
		return ratelimit.ErrCheckFailed
	}

	count, err := uc.repo.CountUnfoundedSince(ctx, tx, input.UserID, now.Add(-uc.config.SoftBlockWindow))
	if err != nil {
		return ratelimit.ErrCheckFailed
	}
	if count > int64(uc.config.SoftBlockThreshold) && !rec.IsSoftBlocked {
		rec.IsSoftBlocked = true
		uc.l.Warnf(ctx, "ratelimit.usecase.RecordUnfounded: Soft-blocking user %s after %d unfounded reports", input.UserID, count)
	}

	return uc.persistRecord(ctx, tx, rec)
}

// ClearSoftBlock lifts the sticky soft block.
func (uc *implUseCase) ClearSoftBlock(ctx context.Context, userID string) error {
	if userID == "" {
		return ratelimit.ErrUserIDRequired
	}

	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}
	defer func() { _ = tx.Rollback() }()

	rec, _, err := uc.repo.GetRecordForUpdate(ctx, tx, userID)
	if err != nil {
		return ratelimit.ErrCheckFailed
	}

	rec.IsSoftBlocked = false
	if err := uc.persistRecord(ctx, tx, rec); err != nil {
		return ratelimit.ErrCheckFailed
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "ratelimit.usecase.ClearSoftBlock: Failed to commit: %v", err)
		return ratelimit.ErrCheckFailed
	}
	return nil
}

// evaluate applies the precedence order to an up-to-date record.
func (uc *implUseCase) evaluate(rec *model.RateLimitRecord, now time.Time) ratelimit.Decision {
	if rec.IsSoftBlocked {
		return ratelimit.Decision{
			Allowed:       false,
			Reason:        ratelimit.ReasonSoftBlocked,
			AlertsToday:   rec.AlertsToday,
			IsSoftBlocked: true,
		}
	}

	if rec.AlertsToday >= uc.config.DailyCap {
		next := util.StartOfDay(now).AddDate(0, 0, 1)
		return ratelimit.Decision{
			Allowed:       false,
			Reason:        ratelimit.ReasonDailyLimit,
			NextAllowedAt: &next,
			AlertsToday:   rec.AlertsToday,
		}
	}

	if rec.LastAlertAt != nil && now.Sub(*rec.LastAlertAt) < uc.config.MinInterval {
		next := rec.LastAlertAt.Add(uc.config.MinInterval)
		return ratelimit.Decision{
			Allowed:       false,
			Reason:        ratelimit.ReasonMinInterval,
			NextAllowedAt: &next,
			AlertsToday:   rec.AlertsToday,
		}
	}

	return ratelimit.Decision{Allowed: true, AlertsToday: rec.AlertsToday}
}

// rollOverDay resets the daily counter the first time the record is
// evaluated on a later calendar day than the last admitted report.
// Reports true when the record changed.
func (uc *implUseCase) rollOverDay(rec *model.RateLimitRecord, now time.Time) bool {
	if rec.LastAlertAt == nil || rec.AlertsToday == 0 {
		return false
	}
	if util.SameDay(*rec.LastAlertAt, now) || now.Before(*rec.LastAlertAt) {
		return false
	}
	rec.AlertsToday = 0
	return true
}

func (uc *implUseCase) persistRecord(ctx context.Context, tx pkgpostgre.Tx, rec *model.RateLimitRecord) error {
	return uc.repo.UpdateRecord(ctx, tx, repository.UpdateRecordOptions{
		UserID:        rec.UserID,
		AlertsToday:   rec.AlertsToday,
		LastAlertAt:   rec.LastAlertAt,
		IsSoftBlocked: rec.IsSoftBlocked,
	})
}
