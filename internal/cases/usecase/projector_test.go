package usecase

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

type fakeRedis struct {
	counts map[string]int64
	ttls   map[string]time.Duration
	fail   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	return "", goredis.Nil
}

func (f *fakeRedis) Delete(ctx context.Context, keys ...string) error { return nil }

func (f *fakeRedis) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (f *fakeRedis) Incr(ctx context.Context, key string) (int64, error) {
	if f.fail {
		return 0, assert.AnError
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) TTL(ctx context.Context, key string) (time.Duration, error) {
	return f.ttls[key], nil
}

func (f *fakeRedis) Close() error                   { return nil }
func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) GetClient() *goredis.Client     { return nil }

func seedCaseEvent(repo *fakeCasesRepo, id, county string, tags []string) model.CaseEvent {
	repo.cases[id] = model.Case{
		ID:       id,
		CaseCode: "SG-" + county[:3] + "-TEST",
		County:   county,
		RiskTags: tags,
		Status:   model.CaseStatusNew,
	}
	return model.CaseEvent{
		EventType: model.EventCaseCreated,
		CaseID:    id,
		CaseCode:  repo.cases[id].CaseCode,
		County:    county,
		RiskTags:  tags,
		CreatedAt: time.Now(),
	}
}

func TestProjectCaseCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("flags a spike on the third similar report", func(t *testing.T) {
		repo := newFakeCasesRepo()
		rd := newFakeRedis()
		p := NewProjector(repo, rd, nil, log.NewNop(), ProjectorConfig{SpikeThreshold: 3})

		var last model.CaseEvent
		for i, id := range []string{"c1", "c2", "c3"} {
			last = seedCaseEvent(repo, id, "KISUMU", []string{"ceremony_planned"})
			require.NoError(t, p.ProjectCaseCreated(ctx, last))

			if i < 2 {
				assert.False(t, repo.cases[id].IsSpike)
			}
		}

		assert.True(t, repo.cases["c3"].IsSpike, "third report in the window is the spike")
		assert.False(t, repo.cases["c1"].IsSpike, "earlier cases keep their flag")
	})

	t.Run("counters are scoped by county and tag", func(t *testing.T) {
		repo := newFakeCasesRepo()
		rd := newFakeRedis()
		p := NewProjector(repo, rd, nil, log.NewNop(), ProjectorConfig{SpikeThreshold: 3})

		require.NoError(t, p.ProjectCaseCreated(ctx, seedCaseEvent(repo, "c1", "KISUMU", []string{"ceremony_planned"})))
		require.NoError(t, p.ProjectCaseCreated(ctx, seedCaseEvent(repo, "c2", "MIGORI", []string{"ceremony_planned"})))
		require.NoError(t, p.ProjectCaseCreated(ctx, seedCaseEvent(repo, "c3", "KISUMU", []string{"travel_arranged"})))

		for _, c := range repo.cases {
			assert.False(t, c.IsSpike)
		}
		assert.Equal(t, int64(1), rd.counts["safegal:spike:kisumu:ceremony_planned"])
	})

	t.Run("window TTL starts on the first hit", func(t *testing.T) {
		repo := newFakeCasesRepo()
		rd := newFakeRedis()
		p := NewProjector(repo, rd, nil, log.NewNop(), ProjectorConfig{SpikeThreshold: 3, SpikeWindow: 48 * time.Hour})

		require.NoError(t, p.ProjectCaseCreated(ctx, seedCaseEvent(repo, "c1", "KISUMU", []string{"ceremony_planned"})))

		assert.Equal(t, 48*time.Hour, rd.ttls["safegal:spike:kisumu:ceremony_planned"])
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		repo := newFakeCasesRepo()
		rd := newFakeRedis()
		p := NewProjector(repo, rd, nil, log.NewNop(), ProjectorConfig{})

		event := seedCaseEvent(repo, "c1", "KISUMU", []string{"ceremony_planned"})
		event.EventType = "case.closed"

		require.NoError(t, p.ProjectCaseCreated(ctx, event))
		assert.Empty(t, rd.counts)
	})

	t.Run("counter failure surfaces so the message is retried", func(t *testing.T) {
		repo := newFakeCasesRepo()
		rd := newFakeRedis()
		rd.fail = true
		p := NewProjector(repo, rd, nil, log.NewNop(), ProjectorConfig{})

		err := p.ProjectCaseCreated(ctx, seedCaseEvent(repo, "c1", "KISUMU", []string{"ceremony_planned"}))
		require.Error(t, err)
	})
}
