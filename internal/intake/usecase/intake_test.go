package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	casesrepo "github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/intake"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/paginator"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

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
	cases map[string]model.Case
}

func newFakeCasesRepo() *fakeCasesRepo {
	return &fakeCasesRepo{cases: make(map[string]model.Case)}
}

func (f *fakeCasesRepo) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	return &fakeTx{}, nil
}

func (f *fakeCasesRepo) InsertCase(ctx context.Context, tx pkgpostgre.Tx, opts casesrepo.InsertCaseOptions) error {
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
		return model.Case{}, casesrepo.ErrCaseNotFound
	}
	return c, nil
}

func (f *fakeCasesRepo) GetCaseByCode(ctx context.Context, code string) (model.Case, error) {
	for _, c := range f.cases {
		if c.CaseCode == code {
			return c, nil
		}
	}
	return model.Case{}, casesrepo.ErrCaseNotFound
}

func (f *fakeCasesRepo) GetCaseForUpdate(ctx context.Context, tx pkgpostgre.Tx, id string) (model.Case, error) {
	return f.GetCase(ctx, id)
}

func (f *fakeCasesRepo) UpdateCaseStatus(ctx context.Context, tx pkgpostgre.Tx, opts casesrepo.UpdateCaseStatusOptions) error {
	return nil
}

func (f *fakeCasesRepo) SetSpike(ctx context.Context, id string) error { return nil }

func (f *fakeCasesRepo) ListCases(ctx context.Context, opts casesrepo.ListCasesOptions) ([]model.Case, error) {
	_ = paginator.PaginateQuery{}
	return nil, nil
}

func (f *fakeCasesRepo) CountCases(ctx context.Context, opts casesrepo.ListCasesOptions) (int64, error) {
	return 0, nil
}

type fakeAudit struct {
	entries         []audit.AppendInput
	reconciliations []audit.RecordReconciliationInput
	fail            bool
}

func (f *fakeAudit) Append(ctx context.Context, input audit.AppendInput) (model.AuditEntry, error) {
	return f.AppendInTx(ctx, &fakeTx{}, input)
}

func (f *fakeAudit) AppendInTx(ctx context.Context, tx pkgpostgre.Tx, input audit.AppendInput) (model.AuditEntry, error) {
	if f.fail {
		return model.AuditEntry{}, audit.ErrAppendFailed
	}
	if ft, ok := tx.(*fakeTx); ok {
		ft.apply = append(ft.apply, func() {
			f.entries = append(f.entries, input)
		})
	}
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
	f.reconciliations = append(f.reconciliations, input)
	return nil
}

func (f *fakeAudit) Reconcile(ctx context.Context) (audit.ReconcileOutput, error) {
	return audit.ReconcileOutput{}, nil
}

type fakeRatelimit struct {
	decision    ratelimit.Decision
	admitErr    error
	recordErr   error
	admissions  int
	admitCalls  int
}

func (f *fakeRatelimit) Admit(ctx context.Context, input ratelimit.AdmitInput) (ratelimit.Decision, error) {
	f.admitCalls++
	if f.admitErr != nil {
		return ratelimit.Decision{}, f.admitErr
	}
	return f.decision, nil
}

func (f *fakeRatelimit) RecordAdmission(ctx context.Context, input ratelimit.RecordAdmissionInput) error {
	return f.RecordAdmissionInTx(ctx, &fakeTx{}, input)
}

func (f *fakeRatelimit) RecordAdmissionInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordAdmissionInput) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	if ft, ok := tx.(*fakeTx); ok {
		ft.apply = append(ft.apply, func() { f.admissions++ })
	}
	return nil
}

func (f *fakeRatelimit) RecordUnfounded(ctx context.Context, input ratelimit.RecordUnfoundedInput) error {
	return nil
}

func (f *fakeRatelimit) RecordUnfoundedInTx(ctx context.Context, tx pkgpostgre.Tx, input ratelimit.RecordUnfoundedInput) error {
	return nil
}

func (f *fakeRatelimit) ClearSoftBlock(ctx context.Context, userID string) error { return nil }

type fakeProducer struct {
	published [][]byte
	keys      [][]byte
}

func (f *fakeProducer) Publish(key, value []byte) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, value)
	return nil
}

func (f *fakeProducer) Close() error       { return nil }
func (f *fakeProducer) HealthCheck() error { return nil }

type harness struct {
	repo     *fakeCasesRepo
	audit    *fakeAudit
	rl       *fakeRatelimit
	producer *fakeProducer
	uc       intake.UseCase
}

func newHarness() *harness {
	h := &harness{
		repo:     newFakeCasesRepo(),
		audit:    &fakeAudit{},
		rl:       &fakeRatelimit{decision: ratelimit.Decision{Allowed: true}},
		producer: &fakeProducer{},
	}
	h.uc = New(h.repo, h.audit, h.rl, h.producer, nil, log.NewNop(), Config{})
	return h
}

var reporter = model.Scope{UserID: "reporter-1", Role: model.RoleReporter}

func validInput() intake.SubmitInput {
	return intake.SubmitInput{
		County:   "Kisumu",
		AgeBand:  "13-15",
		RiskTags: []string{"injury_signs"},
		Note:     "",
	}
}

func TestSubmit(t *testing.T) {
	t.Run("admitted submission persists everything together", func(t *testing.T) {
		h := newHarness()

		input := validInput()
		input.Note = "John Mwangi took her, call 0712345678"

		out, err := h.uc.Submit(context.Background(), reporter, input)
		require.NoError(t, err)
		require.True(t, out.Admitted)

		assert.Equal(t, 100, out.Case.RiskScore)
		assert.Equal(t, "Critical", out.RiskLevel)
		assert.Equal(t, model.CaseStatusNew, out.Case.Status)
		assert.True(t, strings.HasPrefix(out.Case.CaseCode, "SG-KIS-"))
		assert.Len(t, out.Case.CaseCode, 11)

		stored := h.repo.cases[out.Case.ID]
		assert.NotContains(t, stored.RedactedNote, "Mwangi")
		assert.NotContains(t, stored.RedactedNote, "0712345678")
		assert.Contains(t, stored.RedactedNote, "[NAME]")
		assert.Contains(t, stored.RedactedNote, "[PHONE]")

		require.Len(t, h.audit.entries, 1)
		assert.Equal(t, model.ActionCreated, h.audit.entries[0].ActionType)
		assert.Equal(t, "reporter-1", h.audit.entries[0].ActorID)
		assert.Equal(t, out.Case.ID, h.audit.entries[0].CaseID)

		assert.Equal(t, 1, h.rl.admissions)

		require.Len(t, h.producer.published, 1)
		var event model.CaseEvent
		require.NoError(t, json.Unmarshal(h.producer.published[0], &event))
		assert.Equal(t, model.EventCaseCreated, event.EventType)
		assert.Equal(t, out.Case.ID, event.CaseID)
		assert.Equal(t, "Kisumu", event.County)
	})

	t.Run("validation", func(t *testing.T) {
		h := newHarness()

		input := validInput()
		input.County = "  "
		_, err := h.uc.Submit(context.Background(), reporter, input)
		assert.ErrorIs(t, err, intake.ErrCountyRequired)

		input = validInput()
		input.AgeBand = "18-21"
		_, err = h.uc.Submit(context.Background(), reporter, input)
		assert.ErrorIs(t, err, intake.ErrInvalidAgeBand)

		input = validInput()
		input.RiskTags = []string{"injury_signs", "witchcraft"}
		_, err = h.uc.Submit(context.Background(), reporter, input)
		assert.ErrorIs(t, err, intake.ErrInvalidRiskTag)

		assert.Empty(t, h.repo.cases)
	})

	t.Run("denial persists nothing", func(t *testing.T) {
		h := newHarness()
		next := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
		h.rl.decision = ratelimit.Decision{
			Allowed:       false,
			Reason:        ratelimit.ReasonDailyLimit,
			NextAllowedAt: &next,
		}

		out, err := h.uc.Submit(context.Background(), reporter, validInput())
		require.NoError(t, err)
		assert.False(t, out.Admitted)
		require.NotNil(t, out.Denial)
		assert.Equal(t, ratelimit.ReasonDailyLimit, out.Denial.Reason)
		assert.Equal(t, &next, out.Denial.NextAllowedAt)

		assert.Empty(t, h.repo.cases)
		assert.Empty(t, h.audit.entries)
		assert.Empty(t, h.producer.published)
	})

	t.Run("limit check failure is an error not a denial", func(t *testing.T) {
		h := newHarness()
		h.rl.admitErr = ratelimit.ErrCheckFailed

		_, err := h.uc.Submit(context.Background(), reporter, validInput())
		assert.ErrorIs(t, err, ratelimit.ErrCheckFailed)
		assert.Empty(t, h.repo.cases)
	})

	t.Run("racing loser gets a denial and persists nothing", func(t *testing.T) {
		h := newHarness()
		h.rl.recordErr = ratelimit.ErrNotAdmitted

		out, err := h.uc.Submit(context.Background(), reporter, validInput())
		require.NoError(t, err)
		assert.False(t, out.Admitted)
		require.NotNil(t, out.Denial)

		assert.Empty(t, h.repo.cases)
		assert.Empty(t, h.audit.entries)
		assert.Empty(t, h.producer.published)
	})

	t.Run("audit failure persists nothing", func(t *testing.T) {
		h := newHarness()
		h.audit.fail = true

		_, err := h.uc.Submit(context.Background(), reporter, validInput())
		assert.ErrorIs(t, err, intake.ErrSubmitFailed)
		assert.Empty(t, h.repo.cases)
		assert.Equal(t, 0, h.rl.admissions)
	})

	t.Run("moderate report lands in the high band", func(t *testing.T) {
		h := newHarness()

		input := validInput()
		input.AgeBand = "16-17"
		input.RiskTags = []string{"community_rumor"}

		out, err := h.uc.Submit(context.Background(), reporter, input)
		require.NoError(t, err)
		assert.Equal(t, 75, out.Case.RiskScore)
		assert.Equal(t, "High", out.RiskLevel)
	})
}

func TestPreviewRedaction(t *testing.T) {
	h := newHarness()

	out, err := h.uc.PreviewRedaction(context.Background(), intake.PreviewInput{
		Note: "Grace Wanjiku lives at P.O. Box 123 Nairobi, call 0712 345 678",
	})
	require.NoError(t, err)
	assert.True(t, out.HasRedactions)
	assert.Contains(t, out.Redacted, "[NAME]")
	assert.Contains(t, out.Redacted, "[PHONE]")
	assert.Contains(t, out.Redacted, "[ADDRESS]")
	assert.Equal(t, []string{"Names removed", "Phone numbers removed", "Addresses removed"}, out.Labels)

	out, err = h.uc.PreviewRedaction(context.Background(), intake.PreviewInput{Note: "She is scared."})
	require.NoError(t, err)
	assert.False(t, out.HasRedactions)
	assert.Empty(t, out.Labels)
}
