package repository

import (
	"context"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// RateLimitRepository persists per-user rate limit state. Same-user
// mutations serialize on the user's row lock; distinct users never
// contend.
//
//go:generate mockery --name RateLimitRepository
type RateLimitRepository interface {
	BeginTx(ctx context.Context) (postgre.Tx, error)
	// GetRecordForUpdate locks and returns the user's record, creating
	// it lazily with zero counters on first use. The returned flag is
	// true when the record was just created.
	GetRecordForUpdate(ctx context.Context, tx postgre.Tx, userID string) (*model.RateLimitRecord, bool, error)
	UpdateRecord(ctx context.Context, tx postgre.Tx, opts UpdateRecordOptions) error
	InsertUnfounded(ctx context.Context, tx postgre.Tx, opts InsertUnfoundedOptions) error
	CountUnfoundedSince(ctx context.Context, tx postgre.Tx, userID string, since time.Time) (int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	RateLimitRepository
}
