package audit

import (
	"context"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Append writes one entry to the end of the chain. Appends are
	// serialized globally so every entry's prev_hash equals the hash
	// of the entry before it.
	Append(ctx context.Context, input AppendInput) (model.AuditEntry, error)
	// AppendInTx is Append inside the caller's transaction. The entry
	// becomes visible only when the caller commits; the chain lock is
	// held until then.
	AppendInTx(ctx context.Context, tx postgre.Tx, input AppendInput) (model.AuditEntry, error)
	// VerifyChain walks the whole chain in sequence order and recomputes
	// every hash. A break is reported in the result, not as an error.
	VerifyChain(ctx context.Context) (VerifyResult, error)
	// ListEntries returns entries filtered and paginated, newest first.
	ListEntries(ctx context.Context, input ListEntriesInput) (ListEntriesOutput, error)
	// TrustSeal returns the public integrity summary: the latest chain
	// hash and the number of actions recorded in the current month.
	TrustSeal(ctx context.Context) (TrustSeal, error)
	// RecordReconciliation files a pending reconciliation for a case
	// whose audit write could not be completed nor cleanly undone.
	RecordReconciliation(ctx context.Context, input RecordReconciliationInput) error
	// Reconcile processes pending reconciliation records, appending the
	// missing entries and marking the records resolved.
	Reconcile(ctx context.Context) (ReconcileOutput, error)
}
