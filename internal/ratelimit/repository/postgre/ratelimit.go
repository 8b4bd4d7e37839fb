package postgre

import (
	"context"
	"database/sql"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/repository"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// BeginTx starts a transaction. Row locks taken inside it are held
// until commit or rollback.
func (r *implRepository) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.BeginTx: Failed to begin transaction: %v", err)
		return nil, repository.ErrTxBeginFailed
	}
	return tx, nil
}

// GetRecordForUpdate locks the user's row with SELECT ... FOR UPDATE.
// The lazy insert uses ON CONFLICT DO NOTHING so two first-ever
// submissions for the same user cannot both insert; the loser of the
// insert race falls through to the locking select.
func (r *implRepository) GetRecordForUpdate(ctx context.Context, tx pkgpostgre.Tx, userID string) (*model.RateLimitRecord, bool, error) {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return nil, false, err
	}

	rec, err := r.selectForUpdate(ctx, t, userID)
	if err == nil {
		return rec, false, nil
	}
	if err != sql.ErrNoRows {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.GetRecordForUpdate: Failed to select record: %v", err)
		return nil, false, repository.ErrRecordFetchFailed
	}

	res, err := t.ExecContext(ctx, `
		INSERT INTO user_rate_limits (user_id, alerts_today, is_soft_blocked, updated_at)
		VALUES ($1, 0, FALSE, NOW())
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.GetRecordForUpdate: Failed to insert record: %v", err)
		return nil, false, repository.ErrRecordFetchFailed
	}
	inserted, _ := res.RowsAffected()

	rec, err = r.selectForUpdate(ctx, t, userID)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.GetRecordForUpdate: Failed to re-select record: %v", err)
		return nil, false, repository.ErrRecordFetchFailed
	}
	return rec, inserted == 1, nil
}

func (r *implRepository) selectForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*model.RateLimitRecord, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT user_id, alerts_today, last_alert_at, is_soft_blocked, updated_at
		FROM user_rate_limits
		WHERE user_id = $1
		FOR UPDATE`, userID)

	rec := &model.RateLimitRecord{}
	var lastAlertAt sql.NullTime
	if err := row.Scan(&rec.UserID, &rec.AlertsToday, &lastAlertAt, &rec.IsSoftBlocked, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if lastAlertAt.Valid {
		t := lastAlertAt.Time
		rec.LastAlertAt = &t
	}
	return rec, nil
}

// UpdateRecord writes the counters back. Must run in the transaction
// that holds the row lock.
func (r *implRepository) UpdateRecord(ctx context.Context, tx pkgpostgre.Tx, opts repository.UpdateRecordOptions) error {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return err
	}

	var lastAlertAt sql.NullTime
	if opts.LastAlertAt != nil {
		lastAlertAt = sql.NullTime{Time: *opts.LastAlertAt, Valid: true}
	}

	_, err = t.ExecContext(ctx, `
		UPDATE user_rate_limits
		SET alerts_today = $2, last_alert_at = $3, is_soft_blocked = $4, updated_at = NOW()
		WHERE user_id = $1`,
		opts.UserID, opts.AlertsToday, lastAlertAt, opts.IsSoftBlocked)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.UpdateRecord: Failed to update record: %v", err)
		return repository.ErrRecordUpdateFailed
	}
	return nil
}

// InsertUnfounded appends one row to the timestamped unfounded ledger.
func (r *implRepository) InsertUnfounded(ctx context.Context, tx pkgpostgre.Tx, opts repository.InsertUnfoundedOptions) error {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return err
	}

	_, err = t.ExecContext(ctx, `
		INSERT INTO unfounded_reports (id, user_id, case_id, recorded_at)
		VALUES ($1, $2, $3, $4)`,
		opts.ID, opts.UserID, opts.CaseID, opts.RecordedAt)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.InsertUnfounded: Failed to insert ledger entry: %v", err)
		return repository.ErrUnfoundedFailed
	}
	return nil
}

// CountUnfoundedSince counts ledger entries newer than the cutoff.
// Older rows age out of the threshold without mutation.
func (r *implRepository) CountUnfoundedSince(ctx context.Context, tx pkgpostgre.Tx, userID string, since time.Time) (int64, error) {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = t.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM unfounded_reports
		WHERE user_id = $1 AND recorded_at >= $2`,
		userID, since).Scan(&count)
	if err != nil {
		r.l.Errorf(ctx, "ratelimit.repository.postgre.CountUnfoundedSince: Failed to count ledger entries: %v", err)
		return 0, repository.ErrUnfoundedFailed
	}
	return count, nil
}
