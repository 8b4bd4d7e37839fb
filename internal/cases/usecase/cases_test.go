package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// fakeTx buffers mutations and applies them on commit, so a test can
// check that nothing sticks when a step in the middle fails.
type fakeTx struct {
	apply []func()
}

func (t *fakeTx) Commit() error {
	for _, f := range t.apply {
		f()
	}
	return nil
}

func (t *fakeTx) Rollback() error { return nil }

type fakeCasesRepo struct {
	cases    map[string]model.Case
	lastList repository.ListCasesOptions
}

func newFakeCasesRepo() *fakeCasesRepo {
	return &fakeCasesRepo{cases: make(map[string]model.Case)}
}

func (f *fakeCasesRepo) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	return &fakeTx{}, nil
}

func (f *fakeCasesRepo) InsertCase(ctx context.Context, tx pkgpostgre.Tx, opts repository.InsertCaseOptions) error {
	tx.(*fakeTx).apply = append(tx.(*fakeTx).apply, func() {
		f.cases[opts.ID] = model.Case{
			ID:           opts.ID,
			CaseCode:     opts.CaseCode,
			ReporterID:   opts.ReporterID,
			County:       opts.County,
			AgeBand:      opts.AgeBand,
			RiskTags:     opts.RiskTags,
			RedactedNote: opts.RedactedNote,
			RiskScore:    opts.RiskScore,
			RiskReasons:  opts.RiskReasons,
			Status:       opts.Status,
			CreatedAt:    opts.CreatedAt,
			UpdatedAt:    opts.CreatedAt,
		}
	})
	return nil
}

func (f *fakeCasesRepo) GetCase(ctx context.Context, id string) (model.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return model.Case{}, repository.ErrCaseNotFound
	}
	return c, nil
}

func (f *fakeCasesRepo) GetCaseByCode(ctx context.Context, code string) (model.Case, error) {
	for _, c := range f.cases {
		if c.CaseCode == code {
			return c, nil
		}
	}
	return model.Case{}, repository.ErrCaseNotFound
}

func (f *fakeCasesRepo) GetCaseForUpdate(ctx context.Context, tx pkgpostgre.Tx, id string) (model.Case, error) {
	return f.GetCase(ctx, id)
}

func (f *fakeCasesRepo) UpdateCaseStatus(ctx context.Context, tx pkgpostgre.Tx, opts repository.UpdateCaseStatusOptions) error {
	tx.(*fakeTx).apply = append(tx.(*fakeTx).apply, func() {
		c := f.cases[opts.ID]
		c.Status = opts.Status
		c.UpdatedAt = opts.UpdatedAt
		f.cases[opts.ID] = c
	})
	return nil
}

func (f *fakeCasesRepo) SetSpike(ctx context.Context, id string) error {
	c, ok := f.cases[id]
	if !ok {
		return repository.ErrCaseNotFound
	}
	c.IsSpike = true
	f.cases[id] = c
	return nil
}

func (f *fakeCasesRepo) ListCases(ctx context.Context, opts repository.ListCasesOptions) ([]model.Case, error) {
	f.lastList = opts
	var out []model.Case
	for _, c := range f.cases {
		if opts.ReporterID != "" && c.ReporterID != opts.ReporterID {
			continue
		}
		if opts.Status != "" && c.Status != opts.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCasesRepo) CountCases(ctx context.Context, opts repository.ListCasesOptions) (int64, error) {
	list, _ := f.ListCases(ctx, opts)
	return int64(len(list)), nil
}

// fakeAudit records appends; the staged entry only counts once the
// shared transaction commits.
type fakeAudit struct {
	entries []audit.AppendInput
	fail    bool
}

func (f *fakeAudit) Append(ctx context.Context, input audit.AppendInput) (model.AuditEntry, error) {
	return f.AppendInTx(ctx, &fakeTx{}, input)
}

func (f *fakeAudit) AppendInTx(ctx context.Context, tx pkgpostgre.Tx, input audit.AppendInput) (model.AuditEntry, error) {
	if f.fail {
		return model.AuditEntry{}, audit.ErrAppendFailed
	}
	f.entries = append(f.entries, input)
	return model.AuditEntry{CaseID: input.CaseID, ActionType: input.ActionType}, nil
}

func (f *fakeAudit) VerifyChain(ctx context.Context) (audit.VerifyResult, error) {
	return audit.VerifyResult{Valid: true}, nil
}

func (f *fakeAudit) ListEntries(ctx context.Context, input audit.ListEntriesInput) (audit.ListEntriesOutput, error) {
	return audit.ListEntriesOutput{}, nil
}

func (f *fakeAudit) TrustSeal(ctx context.Context) (audit.TrustSeal, error) {
	return audit.TrustSeal{}, nil
}

func (f *fakeAudit) RecordReconciliation(ctx context.Context, input audit.RecordReconciliationInput) error {
	return nil
}

func (f *fakeAudit) Reconcile(ctx context.Context) (audit.ReconcileOutput, error) {
	return audit.ReconcileOutput{}, nil
}

type fakeRatelimit struct {
	unfounded []ratelimit.RecordUnfoundedInput
	fail      bool
}

func (f *fakeRatelimit) Admit(ctx context.Context, input ratelimit.AdmitInput) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true}, nil
}

func (f *fakeRatelimit) RecordAdmission(ctx context.Context, input ratelimit.RecordAdmissionInput) error {
	return nil
}

func (f *fakeRatelimit) RecordAdmissionInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordAdmissionInput) error {
	return nil
}

func (f *fakeRatelimit) RecordUnfounded(ctx context.Context, input ratelimit.RecordUnfoundedInput) error {
	return f.RecordUnfoundedInTx(ctx, &fakeTx{}, input)
}

func (f *fakeRatelimit) RecordUnfoundedInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordUnfoundedInput) error {
	if f.fail {
		return ratelimit.ErrCheckFailed
	}
	f.unfounded = append(f.unfounded, input)
	return nil
}

func (f *fakeRatelimit) ClearSoftBlock(ctx context.Context, userID string) error {
	return nil
}

func seedCase(repo *fakeCasesRepo, id, reporterID, status string) {
	repo.cases[id] = model.Case{
		ID:         id,
		CaseCode:   "SG-KIS-TEST",
		ReporterID: reporterID,
		County:     "Kisumu",
		AgeBand:    "13-15",
		Status:     status,
		CreatedAt:  time.Now().Add(-time.Hour),
		UpdatedAt:  time.Now().Add(-time.Hour),
	}
}

func newTestUseCase(repo *fakeCasesRepo, fa *fakeAudit, fr *fakeRatelimit) cases.UseCase {
	return New(repo, fa, fr, log.NewNop())
}

var (
	officer  = model.Scope{UserID: "officer-1", Role: model.RoleOfficer}
	ngo      = model.Scope{UserID: "ngo-1", Role: model.RoleNGO}
	reporter = model.Scope{UserID: "reporter-1", Role: model.RoleReporter}
)

func TestAcknowledge(t *testing.T) {
	t.Run("officer acknowledges a new case", func(t *testing.T) {
		repo := newFakeCasesRepo()
		fa := &fakeAudit{}
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
		uc := newTestUseCase(repo, fa, &fakeRatelimit{})

		c, err := uc.Acknowledge(context.Background(), officer, "case-1")
		require.NoError(t, err)
		assert.Equal(t, model.CaseStatusAcknowledged, c.Status)
		assert.Equal(t, model.CaseStatusAcknowledged, repo.cases["case-1"].Status)

		require.Len(t, fa.entries, 1)
		assert.Equal(t, model.ActionCPOAck, fa.entries[0].ActionType)
		assert.Equal(t, "officer-1", fa.entries[0].ActorID)
	})

	t.Run("ngo acknowledgement uses ngo_ack", func(t *testing.T) {
		repo := newFakeCasesRepo()
		fa := &fakeAudit{}
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
		uc := newTestUseCase(repo, fa, &fakeRatelimit{})

		_, err := uc.Acknowledge(context.Background(), ngo, "case-1")
		require.NoError(t, err)
		require.Len(t, fa.entries, 1)
		assert.Equal(t, model.ActionNGOAck, fa.entries[0].ActionType)
	})

	t.Run("reporter cannot acknowledge", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

		_, err := uc.Acknowledge(context.Background(), reporter, "case-1")
		assert.ErrorIs(t, err, cases.ErrPermissionDenied)
	})

	t.Run("double acknowledge is rejected", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusAcknowledged)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

		_, err := uc.Acknowledge(context.Background(), officer, "case-1")
		assert.ErrorIs(t, err, cases.ErrInvalidTransition)
	})

	t.Run("unknown case", func(t *testing.T) {
		uc := newTestUseCase(newFakeCasesRepo(), &fakeAudit{}, &fakeRatelimit{})

		_, err := uc.Acknowledge(context.Background(), officer, "missing")
		assert.ErrorIs(t, err, cases.ErrCaseNotFound)
	})
}

func TestRecordAction(t *testing.T) {
	t.Run("moves an acknowledged case to in progress", func(t *testing.T) {
		repo := newFakeCasesRepo()
		fa := &fakeAudit{}
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusAcknowledged)
		uc := newTestUseCase(repo, fa, &fakeRatelimit{})

		c, err := uc.RecordAction(context.Background(), officer, cases.RecordActionInput{
			CaseID:     "case-1",
			ActionType: model.ActionCallGuardian,
			Note:       "Reached guardian on 0712 345 678",
		})
		require.NoError(t, err)
		assert.Equal(t, model.CaseStatusInProgress, c.Status)

		require.Len(t, fa.entries, 1)
		assert.Equal(t, model.ActionCallGuardian, fa.entries[0].ActionType)
		note, _ := fa.entries[0].Details["note"].(string)
		assert.Contains(t, note, "[PHONE]")
		assert.NotContains(t, note, "0712")
	})

	t.Run("further actions keep the case in progress", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusInProgress)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

		c, err := uc.RecordAction(context.Background(), officer, cases.RecordActionInput{
			CaseID:     "case-1",
			ActionType: model.ActionSchoolVisitBooked,
		})
		require.NoError(t, err)
		assert.Equal(t, model.CaseStatusInProgress, c.Status)
	})

	t.Run("unknown action type", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusAcknowledged)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

		_, err := uc.RecordAction(context.Background(), officer, cases.RecordActionInput{
			CaseID:     "case-1",
			ActionType: "phoned_principal",
		})
		assert.ErrorIs(t, err, cases.ErrInvalidAction)
	})

	t.Run("action on a new case is rejected", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

		_, err := uc.RecordAction(context.Background(), officer, cases.RecordActionInput{
			CaseID:     "case-1",
			ActionType: model.ActionCallGuardian,
		})
		assert.ErrorIs(t, err, cases.ErrInvalidTransition)
	})
}

func TestClose(t *testing.T) {
	repo := newFakeCasesRepo()
	fa := &fakeAudit{}
	seedCase(repo, "case-1", "reporter-1", model.CaseStatusInProgress)
	uc := newTestUseCase(repo, fa, &fakeRatelimit{})

	c, err := uc.Close(context.Background(), officer, cases.CloseInput{CaseID: "case-1", Note: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusClosed, c.Status)
	require.Len(t, fa.entries, 1)
	assert.Equal(t, model.ActionClosed, fa.entries[0].ActionType)

	_, err = uc.Close(context.Background(), officer, cases.CloseInput{CaseID: "case-1"})
	assert.ErrorIs(t, err, cases.ErrInvalidTransition)
}

func TestMarkUnfounded(t *testing.T) {
	t.Run("charges the reporter's ledger in the same transaction", func(t *testing.T) {
		repo := newFakeCasesRepo()
		fa := &fakeAudit{}
		fr := &fakeRatelimit{}
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusInProgress)
		uc := newTestUseCase(repo, fa, fr)

		c, err := uc.MarkUnfounded(context.Background(), officer, cases.MarkUnfoundedInput{CaseID: "case-1"})
		require.NoError(t, err)
		assert.Equal(t, model.CaseStatusUnfounded, c.Status)

		require.Len(t, fr.unfounded, 1)
		assert.Equal(t, "reporter-1", fr.unfounded[0].UserID)
		assert.Equal(t, "case-1", fr.unfounded[0].CaseID)

		require.Len(t, fa.entries, 1)
		assert.Equal(t, model.ActionMarkedUnfounded, fa.entries[0].ActionType)
	})

	t.Run("ledger failure aborts the transition", func(t *testing.T) {
		repo := newFakeCasesRepo()
		seedCase(repo, "case-1", "reporter-1", model.CaseStatusInProgress)
		uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{fail: true})

		_, err := uc.MarkUnfounded(context.Background(), officer, cases.MarkUnfoundedInput{CaseID: "case-1"})
		assert.ErrorIs(t, err, cases.ErrStoreUnavailable)
		assert.Equal(t, model.CaseStatusInProgress, repo.cases["case-1"].Status)
	})
}

func TestMutationAuditFailureRollsBack(t *testing.T) {
	repo := newFakeCasesRepo()
	seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
	uc := newTestUseCase(repo, &fakeAudit{fail: true}, &fakeRatelimit{})

	_, err := uc.Acknowledge(context.Background(), officer, "case-1")
	assert.ErrorIs(t, err, cases.ErrStoreUnavailable)
	assert.Equal(t, model.CaseStatusNew, repo.cases["case-1"].Status)
}

func TestGetCaseScoping(t *testing.T) {
	repo := newFakeCasesRepo()
	seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
	seedCase(repo, "case-2", "reporter-2", model.CaseStatusNew)
	uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

	c, err := uc.GetCase(context.Background(), reporter, "case-1")
	require.NoError(t, err)
	assert.Equal(t, "case-1", c.ID)

	_, err = uc.GetCase(context.Background(), reporter, "case-2")
	assert.ErrorIs(t, err, cases.ErrCaseNotFound)

	_, err = uc.GetCase(context.Background(), officer, "case-2")
	assert.NoError(t, err)
}

func TestListCasesScoping(t *testing.T) {
	repo := newFakeCasesRepo()
	seedCase(repo, "case-1", "reporter-1", model.CaseStatusNew)
	seedCase(repo, "case-2", "reporter-2", model.CaseStatusNew)
	uc := newTestUseCase(repo, &fakeAudit{}, &fakeRatelimit{})

	out, err := uc.ListCases(context.Background(), reporter, cases.ListCasesInput{})
	require.NoError(t, err)
	require.Len(t, out.Cases, 1)
	assert.Equal(t, "reporter-1", repo.lastList.ReporterID)

	out, err = uc.ListCases(context.Background(), officer, cases.ListCasesInput{})
	require.NoError(t, err)
	assert.Len(t, out.Cases, 2)
	assert.Equal(t, int64(2), out.Paginator.Total)
}
