package intake

import (
	"context"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Submit validates, redacts, scores, and admits one report. A rate
	// limit denial comes back as a non-admitted output, never an error;
	// errors mean the engine could not decide. On admission the case,
	// its created audit entry, and the reporter's counters commit
	// together.
	Submit(ctx context.Context, sc model.Scope, input SubmitInput) (SubmitOutput, error)
	// PreviewRedaction shows the submitter what the engine will keep of
	// their note before they send it. Nothing is persisted.
	PreviewRedaction(ctx context.Context, input PreviewInput) (PreviewOutput, error)
}
