package ratelimit

import (
	"context"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Admit evaluates whether the user may submit a report right now.
	// A denial is a Decision with Allowed=false, never an error; errors
	// mean the check itself could not run.
	Admit(ctx context.Context, input AdmitInput) (Decision, error)
	// RecordAdmission increments the user's counters after a successful
	// case creation. It re-checks the limits under the row lock and
	// returns ErrNotAdmitted if a concurrent submission won the race.
	RecordAdmission(ctx context.Context, input RecordAdmissionInput) error
	// RecordAdmissionInTx is RecordAdmission inside the caller's
	// transaction, so the counter increment commits or rolls back with
	// the case it accounts for.
	RecordAdmissionInTx(ctx context.Context, tx postgre.Tx, input RecordAdmissionInput) error
	// RecordUnfounded appends to the user's unfounded ledger and sets
	// the soft block once the trailing-window threshold is exceeded.
	RecordUnfounded(ctx context.Context, input RecordUnfoundedInput) error
	// RecordUnfoundedInTx is RecordUnfounded inside the caller's
	// transaction.
	RecordUnfoundedInTx(ctx context.Context, tx postgre.Tx, input RecordUnfoundedInput) error
	// ClearSoftBlock lifts a soft block. Administrative action; the
	// engine never clears the flag on its own.
	ClearSoftBlock(ctx context.Context, userID string) error
}
