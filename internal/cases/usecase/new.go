package usecase

import (
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/audit"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/ratelimit"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

type implUseCase struct {
	repo      repository.PostgresRepository
	auditUC   audit.UseCase
	ratelimit ratelimit.UseCase
	l         log.Logger
}

// New creates a new cases UseCase implementation.
func New(repo repository.PostgresRepository, auditUC audit.UseCase, rlUC ratelimit.UseCase, l log.Logger) cases.UseCase {
	return &implUseCase{
		repo:      repo,
		auditUC:   auditUC,
		ratelimit: rlUC,
		l:         l,
	}
}
