package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

const (
	verifyBatchSize = 500
	trustSealKey    = "safegal:audit:trust_seal"
)

// Append writes one entry in its own transaction.
func (uc *implUseCase) Append(ctx context.Context, input audit.AppendInput) (model.AuditEntry, error) {
	tx, err := uc.repo.BeginTx(ctx)
	if err != nil {
		return model.AuditEntry{}, audit.ErrStoreUnavailable
	}
	defer func() { _ = tx.Rollback() }()

	entry, err := uc.AppendInTx(ctx, tx, input)
	if err != nil {
		return model.AuditEntry{}, err
	}

	if err := tx.Commit(); err != nil {
		uc.l.Errorf(ctx, "audit.usecase.Append: Failed to commit: %v", err)
		return model.AuditEntry{}, audit.ErrAppendFailed
	}
	return entry, nil
}

// AppendInTx chains one entry inside the caller's transaction. The
// chain lock is taken first, so between reading the head and inserting
// no other append can slip in; the lock is released when the caller
// commits or rolls back.
//
// Every action type currently in the vocabulary belongs to a case, so
// CaseID is required; case_actions.case_id is NOT NULL and references
// cases. Admitting system-level entries would need a schema change,
// not just a relaxed check.
func (uc *implUseCase) AppendInTx(ctx context.Context, tx pkgpostgre.Tx, input audit.AppendInput) (model.AuditEntry, error) {
	if input.CaseID == "" {
		return model.AuditEntry{}, audit.ErrCaseIDRequired
	}
	if !audit.ValidActionType(input.ActionType) {
		return model.AuditEntry{}, audit.ErrInvalidActionType
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	createdAt := audit.EntryTime(now)

	if err := uc.repo.LockChain(ctx, tx); err != nil {
		return model.AuditEntry{}, audit.ErrAppendFailed
	}

	prevHash, _, err := uc.repo.GetChainHead(ctx, tx)
	if err != nil {
		return model.AuditEntry{}, audit.ErrAppendFailed
	}

	hash, err := audit.ComputeHash(prevHash, input.CaseID, input.ActionType, input.ActorID, input.Details, createdAt)
	if err != nil {
		uc.l.Errorf(ctx, "audit.usecase.AppendInTx: Failed to compute hash: %v", err)
		return model.AuditEntry{}, audit.ErrAppendFailed
	}

	entry := model.AuditEntry{
		ID:         uuid.New().String(),
		CaseID:     input.CaseID,
		ActionType: input.ActionType,
		ActorID:    input.ActorID,
		Details:    input.Details,
		PrevHash:   prevHash,
		Hash:       hash,
		CreatedAt:  createdAt,
	}

	seq, err := uc.repo.InsertEntry(ctx, tx, repository.InsertEntryOptions{
		ID:         entry.ID,
		CaseID:     entry.CaseID,
		ActionType: entry.ActionType,
		ActorID:    entry.ActorID,
		Details:    entry.Details,
		PrevHash:   entry.PrevHash,
		Hash:       entry.Hash,
		CreatedAt:  entry.CreatedAt,
	})
	if err != nil {
		return model.AuditEntry{}, audit.ErrAppendFailed
	}
	entry.Seq = seq

	return entry, nil
}

// VerifyChain recomputes every hash in sequence order and checks each
// entry links to its predecessor. The walk is batched so the chain
// never has to fit in memory.
func (uc *implUseCase) VerifyChain(ctx context.Context) (audit.VerifyResult, error) {
	prevHash := model.GenesisHash
	var checked, afterSeq int64

	for {
		batch, err := uc.repo.ListChain(ctx, afterSeq, verifyBatchSize)
		if err != nil {
			return audit.VerifyResult{}, audit.ErrStoreUnavailable
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			e := &batch[i]
			if e.PrevHash != prevHash {
				return uc.reportBroken(ctx, e, checked)
			}
			hash, err := audit.ComputeHash(e.PrevHash, e.CaseID, e.ActionType, e.ActorID, e.Details, e.CreatedAt)
			if err != nil {
				uc.l.Errorf(ctx, "audit.usecase.VerifyChain: Failed to recompute hash for %s: %v", e.ID, err)
				return audit.VerifyResult{}, audit.ErrStoreUnavailable
			}
			if hash != e.Hash {
				return uc.reportBroken(ctx, e, checked)
			}
			prevHash = e.Hash
			checked++
		}

		afterSeq = batch[len(batch)-1].Seq
		if len(batch) < verifyBatchSize {
			break
		}
	}

	return audit.VerifyResult{Valid: true, Checked: checked}, nil
}

// reportBroken pages the operators and surfaces the violation. The
// chain is never auto-repaired.
func (uc *implUseCase) reportBroken(ctx context.Context, e *model.AuditEntry, checked int64) (audit.VerifyResult, error) {
	uc.l.Errorf(ctx, "audit.usecase.VerifyChain: Chain broken at entry %s (seq %d)", e.ID, e.Seq)
	if uc.discord != nil {
		if err := uc.discord.SendError(ctx, "Audit chain integrity violation",
			"Entry "+e.ID+" failed verification", audit.ErrChainIntegrityViolation); err != nil {
			uc.l.Warnf(ctx, "audit.usecase.VerifyChain: Failed to page operators: %v", err)
		}
	}
	return audit.VerifyResult{
		Valid:          false,
		Checked:        checked,
		FirstBrokenID:  e.ID,
		FirstBrokenSeq: e.Seq,
	}, audit.ErrChainIntegrityViolation
}

// ListEntries returns entries newest first.
func (uc *implUseCase) ListEntries(ctx context.Context, input audit.ListEntriesInput) (audit.ListEntriesOutput, error) {
	input.PagQuery.Adjust()

	opts := repository.ListEntriesOptions{
		CaseID:     input.CaseID,
		ActionType: input.ActionType,
		ActorID:    input.ActorID,
		PagQuery:   input.PagQuery,
	}

	entries, err := uc.repo.ListEntries(ctx, opts)
	if err != nil {
		return audit.ListEntriesOutput{}, audit.ErrStoreUnavailable
	}
	total, err := uc.repo.CountEntries(ctx, opts)
	if err != nil {
		return audit.ListEntriesOutput{}, audit.ErrStoreUnavailable
	}

	return audit.ListEntriesOutput{
		Entries: entries,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(entries)),
			PerPage:     input.PagQuery.Limit,
			CurrentPage: input.PagQuery.Page,
		},
	}, nil
}

// TrustSeal serves the public integrity summary, cached briefly so the
// unauthenticated endpoint cannot hammer the store.
func (uc *implUseCase) TrustSeal(ctx context.Context) (audit.TrustSeal, error) {
	if uc.redis != nil {
		if cached, err := uc.redis.Get(ctx, trustSealKey); err == nil {
			var seal audit.TrustSeal
			if err := json.Unmarshal([]byte(cached), &seal); err == nil {
				return seal, nil
			}
		}
	}

	head, _, err := uc.repo.GetChainHead(ctx, nil)
	if err != nil {
		return audit.TrustSeal{}, audit.ErrStoreUnavailable
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := uc.repo.CountEntriesSince(ctx, monthStart)
	if err != nil {
		return audit.TrustSeal{}, audit.ErrStoreUnavailable
	}

	seal := audit.TrustSeal{
		LatestHash:       head,
		MonthActionCount: count,
		GeneratedAt:      now,
	}

	if uc.redis != nil {
		if raw, err := json.Marshal(seal); err == nil {
			if err := uc.redis.Set(ctx, trustSealKey, string(raw), uc.config.TrustSealTTL); err != nil {
				uc.l.Warnf(ctx, "audit.usecase.TrustSeal: Failed to cache seal: %v", err)
			}
		}
	}
	return seal, nil
}

// RecordReconciliation files a pending record on its own connection,
// outside any failing transaction.
func (uc *implUseCase) RecordReconciliation(ctx context.Context, input audit.RecordReconciliationInput) error {
	if input.CaseID == "" {
		return audit.ErrCaseIDRequired
	}

	err := uc.repo.InsertReconciliation(ctx, repository.InsertReconciliationOptions{
		ID:         uuid.New().String(),
		CaseID:     input.CaseID,
		ActionType: input.ActionType,
		ActorID:    input.ActorID,
		Reason:     input.Reason,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return audit.ErrStoreUnavailable
	}
	return nil
}

// Reconcile appends the entry each pending record is missing, then
// marks the record resolved. A record whose entry already exists is
// resolved without a new append.
func (uc *implUseCase) Reconcile(ctx context.Context) (audit.ReconcileOutput, error) {
	records, err := uc.repo.ListPendingReconciliations(ctx)
	if err != nil {
		return audit.ReconcileOutput{}, audit.ErrStoreUnavailable
	}

	out := audit.ReconcileOutput{Pending: len(records)}
	for _, rec := range records {
		exists, err := uc.repo.HasEntry(ctx, rec.CaseID, rec.ActionType)
		if err != nil {
			uc.l.Errorf(ctx, "audit.usecase.Reconcile: Failed to check entry for case %s: %v", rec.CaseID, err)
			continue
		}

		if !exists {
			_, err := uc.Append(ctx, audit.AppendInput{
				CaseID:     rec.CaseID,
				ActionType: rec.ActionType,
				ActorID:    rec.ActorID,
				Details: map[string]interface{}{
					"reconciled": true,
					"reason":     rec.Reason,
				},
			})
			if err != nil {
				uc.l.Errorf(ctx, "audit.usecase.Reconcile: Failed to append entry for case %s: %v", rec.CaseID, err)
				continue
			}
			out.Repaired++
		}

		if err := uc.repo.ResolveReconciliation(ctx, rec.ID, time.Now()); err != nil {
			uc.l.Errorf(ctx, "audit.usecase.Reconcile: Failed to resolve record %s: %v", rec.ID, err)
			continue
		}
		out.Resolved++
	}
	return out, nil
}
