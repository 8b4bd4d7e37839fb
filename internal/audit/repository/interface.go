package repository

import (
	"context"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// AuditRepository persists the hash chain and its reconciliation
// ledger. Appends must run inside a transaction holding the chain
// lock; reads never take it.
//
//go:generate mockery --name AuditRepository
type AuditRepository interface {
	BeginTx(ctx context.Context) (postgre.Tx, error)
	// LockChain takes the chain-wide advisory lock. Released when the
	// transaction commits or rolls back.
	LockChain(ctx context.Context, tx postgre.Tx) error
	// GetChainHead returns the hash and sequence of the newest entry,
	// or the genesis hash and zero when the chain is empty. tx may be
	// nil for a lock-free read.
	GetChainHead(ctx context.Context, tx postgre.Tx) (string, int64, error)
	InsertEntry(ctx context.Context, tx postgre.Tx, opts InsertEntryOptions) (int64, error)

	ListEntries(ctx context.Context, opts ListEntriesOptions) ([]model.AuditEntry, error)
	CountEntries(ctx context.Context, opts ListEntriesOptions) (int64, error)
	// ListChain returns up to limit entries with seq greater than
	// afterSeq, in ascending sequence order.
	ListChain(ctx context.Context, afterSeq int64, limit int) ([]model.AuditEntry, error)
	CountEntriesSince(ctx context.Context, since time.Time) (int64, error)
	HasEntry(ctx context.Context, caseID, actionType string) (bool, error)

	InsertReconciliation(ctx context.Context, opts InsertReconciliationOptions) error
	ListPendingReconciliations(ctx context.Context) ([]model.ReconciliationRecord, error)
	ResolveReconciliation(ctx context.Context, id string, resolvedAt time.Time) error
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	AuditRepository
}
