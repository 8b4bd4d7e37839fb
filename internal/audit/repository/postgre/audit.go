package postgre

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// chainLockKey is the application-wide advisory lock key serializing
// chain appends. One key for the whole chain; appends never interleave.
const chainLockKey = 730011

const entryColumns = "id, seq, case_id, action_type, actor_id, details, prev_hash, action_hash, created_at"

func (r *implRepository) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.BeginTx: Failed to begin transaction: %v", err)
		return nil, repository.ErrTxBeginFailed
	}
	return tx, nil
}

// LockChain blocks until the transaction holds the chain advisory
// lock. pg_advisory_xact_lock releases on commit or rollback.
func (r *implRepository) LockChain(ctx context.Context, tx pkgpostgre.Tx) error {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return err
	}
	if _, err := t.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, chainLockKey); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.LockChain: Failed to acquire advisory lock: %v", err)
		return repository.ErrLockFailed
	}
	return nil
}

func (r *implRepository) GetChainHead(ctx context.Context, tx pkgpostgre.Tx) (string, int64, error) {
	query := `
		SELECT action_hash, seq
		FROM case_actions
		ORDER BY seq DESC
		LIMIT 1`

	var row *sql.Row
	if tx != nil {
		t, err := pkgpostgre.SQLTx(tx)
		if err != nil {
			return "", 0, err
		}
		row = t.QueryRowContext(ctx, query)
	} else {
		row = r.db.QueryRowContext(ctx, query)
	}

	var hash string
	var seq int64
	if err := row.Scan(&hash, &seq); err != nil {
		if err == sql.ErrNoRows {
			return model.GenesisHash, 0, nil
		}
		r.l.Errorf(ctx, "audit.repository.postgre.GetChainHead: Failed to read chain head: %v", err)
		return "", 0, repository.ErrEntryFetchFailed
	}
	return hash, seq, nil
}

func (r *implRepository) InsertEntry(ctx context.Context, tx pkgpostgre.Tx, opts repository.InsertEntryOptions) (int64, error) {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return 0, err
	}

	details, err := json.Marshal(opts.Details)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.InsertEntry: Failed to marshal details: %v", err)
		return 0, repository.ErrEntryInsertFailed
	}

	var seq int64
	err = t.QueryRowContext(ctx, `
		INSERT INTO case_actions (id, case_id, action_type, actor_id, details, prev_hash, action_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`,
		opts.ID, opts.CaseID, opts.ActionType, opts.ActorID, details, opts.PrevHash, opts.Hash, opts.CreatedAt).Scan(&seq)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.InsertEntry: Failed to insert entry: %v", err)
		return 0, repository.ErrEntryInsertFailed
	}
	return seq, nil
}

func (r *implRepository) ListEntries(ctx context.Context, opts repository.ListEntriesOptions) ([]model.AuditEntry, error) {
	where, args := buildEntryFilter(opts)
	query := `SELECT ` + entryColumns + ` FROM case_actions` + where +
		` ORDER BY seq DESC LIMIT ` + strconv.FormatInt(opts.PagQuery.Limit, 10) +
		` OFFSET ` + strconv.FormatInt(opts.PagQuery.Offset(), 10)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ListEntries: Failed to query entries: %v", err)
		return nil, repository.ErrEntryFetchFailed
	}
	defer rows.Close()

	return r.scanEntries(ctx, rows)
}

func (r *implRepository) CountEntries(ctx context.Context, opts repository.ListEntriesOptions) (int64, error) {
	where, args := buildEntryFilter(opts)

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM case_actions`+where, args...).Scan(&count); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.CountEntries: Failed to count entries: %v", err)
		return 0, repository.ErrEntryFetchFailed
	}
	return count, nil
}

func (r *implRepository) ListChain(ctx context.Context, afterSeq int64, limit int) ([]model.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM case_actions
		WHERE seq > $1
		ORDER BY seq ASC
		LIMIT $2`, afterSeq, limit)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ListChain: Failed to query chain: %v", err)
		return nil, repository.ErrEntryFetchFailed
	}
	defer rows.Close()

	return r.scanEntries(ctx, rows)
}

func (r *implRepository) CountEntriesSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM case_actions
		WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.CountEntriesSince: Failed to count entries: %v", err)
		return 0, repository.ErrEntryFetchFailed
	}
	return count, nil
}

func (r *implRepository) HasEntry(ctx context.Context, caseID, actionType string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM case_actions WHERE case_id = $1 AND action_type = $2
		)`, caseID, actionType).Scan(&exists)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.HasEntry: Failed to check entry: %v", err)
		return false, repository.ErrEntryFetchFailed
	}
	return exists, nil
}

func (r *implRepository) InsertReconciliation(ctx context.Context, opts repository.InsertReconciliationOptions) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_reconciliation (id, case_id, action_type, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		opts.ID, opts.CaseID, opts.ActionType, opts.ActorID, opts.Reason, opts.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.InsertReconciliation: Failed to insert record: %v", err)
		return repository.ErrReconciliationFailed
	}
	return nil
}

func (r *implRepository) ListPendingReconciliations(ctx context.Context) ([]model.ReconciliationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, case_id, action_type, actor_id, reason, resolved_at, created_at
		FROM audit_reconciliation
		WHERE resolved_at IS NULL
		ORDER BY created_at ASC`)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ListPendingReconciliations: Failed to query records: %v", err)
		return nil, repository.ErrReconciliationFailed
	}
	defer rows.Close()

	var records []model.ReconciliationRecord
	for rows.Next() {
		var rec model.ReconciliationRecord
		var resolvedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.CaseID, &rec.ActionType, &rec.ActorID, &rec.Reason, &resolvedAt, &rec.CreatedAt); err != nil {
			r.l.Errorf(ctx, "audit.repository.postgre.ListPendingReconciliations: Failed to scan record: %v", err)
			return nil, repository.ErrReconciliationFailed
		}
		if resolvedAt.Valid {
			t := resolvedAt.Time
			rec.ResolvedAt = &t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ListPendingReconciliations: Failed to iterate records: %v", err)
		return nil, repository.ErrReconciliationFailed
	}
	return records, nil
}

func (r *implRepository) ResolveReconciliation(ctx context.Context, id string, resolvedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE audit_reconciliation
		SET resolved_at = $2
		WHERE id = $1`, id, resolvedAt)
	if err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.ResolveReconciliation: Failed to update record: %v", err)
		return repository.ErrReconciliationFailed
	}
	return nil
}

func (r *implRepository) scanEntries(ctx context.Context, rows *sql.Rows) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var details []byte
		if err := rows.Scan(&e.ID, &e.Seq, &e.CaseID, &e.ActionType, &e.ActorID, &details, &e.PrevHash, &e.Hash, &e.CreatedAt); err != nil {
			r.l.Errorf(ctx, "audit.repository.postgre.scanEntries: Failed to scan entry: %v", err)
			return nil, repository.ErrEntryFetchFailed
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				r.l.Errorf(ctx, "audit.repository.postgre.scanEntries: Failed to unmarshal details: %v", err)
				return nil, repository.ErrEntryFetchFailed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "audit.repository.postgre.scanEntries: Failed to iterate entries: %v", err)
		return nil, repository.ErrEntryFetchFailed
	}
	return entries, nil
}

func buildEntryFilter(opts repository.ListEntriesOptions) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if opts.CaseID != "" {
		args = append(args, opts.CaseID)
		conds = append(conds, "case_id = $"+strconv.Itoa(len(args)))
	}
	if opts.ActionType != "" {
		args = append(args, opts.ActionType)
		conds = append(conds, "action_type = $"+strconv.Itoa(len(args)))
	}
	if opts.ActorID != "" {
		args = append(args, opts.ActorID)
		conds = append(conds, "actor_id = $"+strconv.Itoa(len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
