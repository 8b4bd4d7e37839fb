package usecase

import (
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

const (
	defaultDailyCap           = 3
	defaultMinInterval        = 10 * time.Minute
	defaultSoftBlockThreshold = 5
	defaultSoftBlockWindow    = 30 * 24 * time.Hour
)

// Config holds the admission thresholds.
type Config struct {
	DailyCap           int
	MinInterval        time.Duration
	SoftBlockThreshold int
	SoftBlockWindow    time.Duration
}

type implUseCase struct {
	repo   repository.PostgresRepository
	l      log.Logger
	config Config
}

// New creates a new ratelimit UseCase implementation.
func New(repo repository.PostgresRepository, l log.Logger, cfg Config) ratelimit.UseCase {
	if cfg.DailyCap <= 0 {
		cfg.DailyCap = defaultDailyCap
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}
	if cfg.SoftBlockThreshold <= 0 {
		cfg.SoftBlockThreshold = defaultSoftBlockThreshold
	}
	if cfg.SoftBlockWindow <= 0 {
		cfg.SoftBlockWindow = defaultSoftBlockWindow
	}

	return &implUseCase{
		repo:   repo,
		l:      l,
		config: cfg,
	}
}
