package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/redis"
)

const (
	defaultSpikeThreshold = 3
	defaultSpikeWindow    = 48 * time.Hour

	spikeKeyPrefix = "safegal:spike"
)

// ProjectorConfig holds the spike detection tunables.
type ProjectorConfig struct {
	SpikeThreshold int
	SpikeWindow    time.Duration
}

type implProjector struct {
	repo    repository.PostgresRepository
	redis   redis.IRedis
	discord discord.IDiscord
	l       log.Logger
	config  ProjectorConfig
}

// NewProjector creates the case event projector. discord may be nil;
// spike alerts are then only logged.
func NewProjector(repo repository.PostgresRepository, rd redis.IRedis, dc discord.IDiscord, l log.Logger, cfg ProjectorConfig) cases.Projector {
	if cfg.SpikeThreshold <= 0 {
		cfg.SpikeThreshold = defaultSpikeThreshold
	}
	if cfg.SpikeWindow <= 0 {
		cfg.SpikeWindow = defaultSpikeWindow
	}

	return &implProjector{
		repo:    repo,
		redis:   rd,
		discord: dc,
		l:       l,
		config:  cfg,
	}
}

func (p *implProjector) ProjectCaseCreated(ctx context.Context, event model.CaseEvent) error {
	if event.EventType != model.EventCaseCreated {
		return nil
	}

	spike := false
	for _, tag := range event.RiskTags {
		key := spikeKey(event.County, tag)

		count, err := p.redis.Incr(ctx, key)
		if err != nil {
			p.l.Errorf(ctx, "cases.usecase.ProjectCaseCreated: Failed to bump counter %s: %v", key, err)
			return err
		}
		// First hit in the window starts the clock.
		if count == 1 {
			if err := p.redis.Expire(ctx, key, p.config.SpikeWindow); err != nil {
				p.l.Warnf(ctx, "cases.usecase.ProjectCaseCreated: Failed to set TTL on %s: %v", key, err)
			}
		}
		if count >= int64(p.config.SpikeThreshold) {
			spike = true
		}
	}

	if !spike {
		return nil
	}

	if err := p.repo.SetSpike(ctx, event.CaseID); err != nil {
		p.l.Errorf(ctx, "cases.usecase.ProjectCaseCreated: Failed to flag spike on case %s: %v", event.CaseID, err)
		return cases.ErrStoreUnavailable
	}

	p.l.Warnf(ctx, "cases.usecase.ProjectCaseCreated: Spike detected in %s (case %s)", event.County, event.CaseCode)
	if p.discord != nil {
		if err := p.discord.SendWarning(ctx, "Report spike detected",
			fmt.Sprintf("Case %s: %d+ similar reports in %s within %s",
				event.CaseCode, p.config.SpikeThreshold, event.County, p.config.SpikeWindow)); err != nil {
			p.l.Warnf(ctx, "cases.usecase.ProjectCaseCreated: Failed to send spike alert: %v", err)
		}
	}

	return nil
}

// spikeKey is one counter per county+tag pair. Tags and counties are
// normalized so the projector and any future readers agree on keys.
func spikeKey(county, tag string) string {
	return fmt.Sprintf("%s:%s:%s",
		spikeKeyPrefix,
		strings.ToLower(strings.TrimSpace(county)),
		strings.ToLower(strings.TrimSpace(tag)),
	)
}
