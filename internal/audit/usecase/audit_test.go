package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

type fakeTx struct{}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

// fakeRepo keeps the chain in an ordered slice, which is exactly what
// the store gives back when reading by sequence.
type fakeRepo struct {
	entries []model.AuditEntry
	recs    []model.ReconciliationRecord
	failAll bool
}

var errFake = errors.New("store down")

func (f *fakeRepo) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	if f.failAll {
		return nil, errFake
	}
	return &fakeTx{}, nil
}

func (f *fakeRepo) LockChain(ctx context.Context, tx pkgpostgre.Tx) error {
	if f.failAll {
		return errFake
	}
	return nil
}

func (f *fakeRepo) GetChainHead(ctx context.Context, tx pkgpostgre.Tx) (string, int64, error) {
	if f.failAll {
		return "", 0, errFake
	}
	if len(f.entries) == 0 {
		return model.GenesisHash, 0, nil
	}
	last := f.entries[len(f.entries)-1]
	return last.Hash, last.Seq, nil
}

func (f *fakeRepo) InsertEntry(ctx context.Context, tx pkgpostgre.Tx, opts repository.InsertEntryOptions) (int64, error) {
	if f.failAll {
		return 0, errFake
	}
	seq := int64(len(f.entries) + 1)
	f.entries = append(f.entries, model.AuditEntry{
		ID:         opts.ID,
		Seq:        seq,
		CaseID:     opts.CaseID,
		ActionType: opts.ActionType,
		ActorID:    opts.ActorID,
		Details:    opts.Details,
		PrevHash:   opts.PrevHash,
		Hash:       opts.Hash,
		CreatedAt:  opts.CreatedAt,
	})
	return seq, nil
}

func (f *fakeRepo) matches(e model.AuditEntry, opts repository.ListEntriesOptions) bool {
	if opts.CaseID != "" && e.CaseID != opts.CaseID {
		return false
	}
	if opts.ActionType != "" && e.ActionType != opts.ActionType {
		return false
	}
	if opts.ActorID != "" && e.ActorID != opts.ActorID {
		return false
	}
	return true
}

func (f *fakeRepo) ListEntries(ctx context.Context, opts repository.ListEntriesOptions) ([]model.AuditEntry, error) {
	if f.failAll {
		return nil, errFake
	}
	var filtered []model.AuditEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.matches(f.entries[i], opts) {
			filtered = append(filtered, f.entries[i])
		}
	}
	offset := opts.PagQuery.Offset()
	if offset >= int64(len(filtered)) {
		return nil, nil
	}
	end := offset + opts.PagQuery.Limit
	if end > int64(len(filtered)) {
		end = int64(len(filtered))
	}
	return filtered[offset:end], nil
}

func (f *fakeRepo) CountEntries(ctx context.Context, opts repository.ListEntriesOptions) (int64, error) {
	if f.failAll {
		return 0, errFake
	}
	var count int64
	for _, e := range f.entries {
		if f.matches(e, opts) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListChain(ctx context.Context, afterSeq int64, limit int) ([]model.AuditEntry, error) {
	if f.failAll {
		return nil, errFake
	}
	var out []model.AuditEntry
	for _, e := range f.entries {
		if e.Seq > afterSeq {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) CountEntriesSince(ctx context.Context, since time.Time) (int64, error) {
	if f.failAll {
		return 0, errFake
	}
	var count int64
	for _, e := range f.entries {
		if !e.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) HasEntry(ctx context.Context, caseID, actionType string) (bool, error) {
	if f.failAll {
		return false, errFake
	}
	for _, e := range f.entries {
		if e.CaseID == caseID && e.ActionType == actionType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) InsertReconciliation(ctx context.Context, opts repository.InsertReconciliationOptions) error {
	if f.failAll {
		return errFake
	}
	f.recs = append(f.recs, model.ReconciliationRecord{
		ID:         opts.ID,
		CaseID:     opts.CaseID,
		ActionType: opts.ActionType,
		ActorID:    opts.ActorID,
		Reason:     opts.Reason,
		CreatedAt:  opts.CreatedAt,
	})
	return nil
}

func (f *fakeRepo) ListPendingReconciliations(ctx context.Context) ([]model.ReconciliationRecord, error) {
	if f.failAll {
		return nil, errFake
	}
	var out []model.ReconciliationRecord
	for _, rec := range f.recs {
		if rec.ResolvedAt == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) ResolveReconciliation(ctx context.Context, id string, resolvedAt time.Time) error {
	if f.failAll {
		return errFake
	}
	for i := range f.recs {
		if f.recs[i].ID == id {
			t := resolvedAt
			f.recs[i].ResolvedAt = &t
			return nil
		}
	}
	return nil
}

func newTestUseCase(repo *fakeRepo) audit.UseCase {
	return New(repo, nil, nil, log.NewNop(), Config{})
}

func appendN(t *testing.T, uc audit.UseCase, n int, at time.Time) []model.AuditEntry {
	t.Helper()
	actions := []string{
		model.ActionCreated, model.ActionCPOAck, model.ActionCallGuardian,
		model.ActionSchoolVisitBooked, model.ActionEscortToClinic, model.ActionClosed,
	}
	entries := make([]model.AuditEntry, 0, n)
	for i := 0; i < n; i++ {
		e, err := uc.Append(context.Background(), audit.AppendInput{
			CaseID:     "case-1",
			ActionType: actions[i%len(actions)],
			ActorID:    "officer-1",
			Details:    map[string]interface{}{"step": i},
			Now:        at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return entries
}

func TestAppendChainsEntries(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	entries := appendN(t, uc, 3, at)

	assert.Equal(t, model.GenesisHash, entries[0].PrevHash)
	assert.Equal(t, entries[0].Hash, entries[1].PrevHash)
	assert.Equal(t, entries[1].Hash, entries[2].PrevHash)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, int64(3), entries[2].Seq)
}

func TestAppendValidation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	_, err := uc.Append(context.Background(), audit.AppendInput{ActionType: model.ActionCreated})
	assert.ErrorIs(t, err, audit.ErrCaseIDRequired)

	_, err = uc.Append(context.Background(), audit.AppendInput{CaseID: "case-1", ActionType: "deleted"})
	assert.ErrorIs(t, err, audit.ErrInvalidActionType)
}

func TestAppendStoreFailure(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{failAll: true})

	_, err := uc.Append(context.Background(), audit.AppendInput{
		CaseID:     "case-1",
		ActionType: model.ActionCreated,
	})
	assert.ErrorIs(t, err, audit.ErrStoreUnavailable)
}

func TestVerifyChain(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("intact chain verifies", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo)
		appendN(t, uc, 7, at)

		result, err := uc.VerifyChain(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, int64(7), result.Checked)
		assert.Empty(t, result.FirstBrokenID)
	})

	t.Run("empty chain verifies", func(t *testing.T) {
		uc := newTestUseCase(&fakeRepo{})

		result, err := uc.VerifyChain(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, int64(0), result.Checked)
	})

	t.Run("tampered details identify the entry", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo)
		appendN(t, uc, 7, at)

		repo.entries[3].Details["step"] = 99

		result, err := uc.VerifyChain(context.Background())
		require.ErrorIs(t, err, audit.ErrChainIntegrityViolation)
		assert.False(t, result.Valid)
		assert.Equal(t, repo.entries[3].ID, result.FirstBrokenID)
		assert.Equal(t, int64(4), result.FirstBrokenSeq)
		assert.Equal(t, int64(3), result.Checked)
	})

	t.Run("broken link identifies the entry", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := newTestUseCase(repo)
		appendN(t, uc, 5, at)

		repo.entries[2].PrevHash = repo.entries[0].Hash

		result, err := uc.VerifyChain(context.Background())
		require.ErrorIs(t, err, audit.ErrChainIntegrityViolation)
		assert.False(t, result.Valid)
		assert.Equal(t, repo.entries[2].ID, result.FirstBrokenID)
	})

	t.Run("store failure is an error not a verdict", func(t *testing.T) {
		uc := newTestUseCase(&fakeRepo{failAll: true})

		_, err := uc.VerifyChain(context.Background())
		assert.ErrorIs(t, err, audit.ErrStoreUnavailable)
	})
}

func TestListEntries(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	appendN(t, uc, 6, at)

	_, err := uc.Append(context.Background(), audit.AppendInput{
		CaseID:     "case-2",
		ActionType: model.ActionCreated,
		ActorID:    "reporter-1",
		Now:        at.Add(time.Hour),
	})
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		out, err := uc.ListEntries(context.Background(), audit.ListEntriesInput{})
		require.NoError(t, err)
		require.Len(t, out.Entries, 7)
		assert.Equal(t, int64(7), out.Entries[0].Seq)
		assert.Equal(t, int64(7), out.Paginator.Total)
	})

	t.Run("filter by case", func(t *testing.T) {
		out, err := uc.ListEntries(context.Background(), audit.ListEntriesInput{CaseID: "case-2"})
		require.NoError(t, err)
		require.Len(t, out.Entries, 1)
		assert.Equal(t, "case-2", out.Entries[0].CaseID)
	})

	t.Run("pagination", func(t *testing.T) {
		out, err := uc.ListEntries(context.Background(), audit.ListEntriesInput{
			PagQuery: paginator.PaginateQuery{Page: 2, Limit: 3},
		})
		require.NoError(t, err)
		require.Len(t, out.Entries, 3)
		assert.Equal(t, int64(4), out.Entries[0].Seq)
		assert.Equal(t, int64(7), out.Paginator.Total)
	})
}

func TestTrustSeal(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	// One entry from a previous month, two from this one.
	appendN(t, uc, 1, monthStart.AddDate(0, 0, -3))
	appendN(t, uc, 2, monthStart)

	seal, err := uc.TrustSeal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.entries[len(repo.entries)-1].Hash, seal.LatestHash)
	assert.Equal(t, int64(2), seal.MonthActionCount)
}

func TestTrustSealEmptyChain(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{})

	seal, err := uc.TrustSeal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.GenesisHash, seal.LatestHash)
	assert.Equal(t, int64(0), seal.MonthActionCount)
}

func TestReconcile(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(repo)
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// case-1 already has its created entry; case-2 lost its write.
	_, err := uc.Append(context.Background(), audit.AppendInput{
		CaseID:     "case-1",
		ActionType: model.ActionCreated,
		ActorID:    "reporter-1",
		Now:        at,
	})
	require.NoError(t, err)

	require.NoError(t, uc.RecordReconciliation(context.Background(), audit.RecordReconciliationInput{
		CaseID:     "case-1",
		ActionType: model.ActionCreated,
		ActorID:    "reporter-1",
		Reason:     "commit outcome unknown",
	}))
	require.NoError(t, uc.RecordReconciliation(context.Background(), audit.RecordReconciliationInput{
		CaseID:     "case-2",
		ActionType: model.ActionCreated,
		ActorID:    "reporter-2",
		Reason:     "append failed after case insert",
	}))

	out, err := uc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pending)
	assert.Equal(t, 1, out.Repaired)
	assert.Equal(t, 2, out.Resolved)

	exists, err := repo.HasEntry(context.Background(), "case-2", model.ActionCreated)
	require.NoError(t, err)
	assert.True(t, exists)

	// The repaired entry extends the chain without breaking it.
	result, err := uc.VerifyChain(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Valid)

	pending, err := repo.ListPendingReconciliations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}
