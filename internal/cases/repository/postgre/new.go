package postgre

import (
	"database/sql"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

func New(db *sql.DB, l log.Logger) repository.PostgresRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
