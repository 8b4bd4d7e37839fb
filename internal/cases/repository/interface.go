package repository

import (
	"context"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

// CasesRepository persists cases. Status transitions must run against
// a row locked with GetCaseForUpdate so concurrent mutations of the
// same case serialize.
//
//go:generate mockery --name CasesRepository
type CasesRepository interface {
	BeginTx(ctx context.Context) (postgre.Tx, error)
	InsertCase(ctx context.Context, tx postgre.Tx, opts InsertCaseOptions) error
	GetCase(ctx context.Context, id string) (model.Case, error)
	GetCaseByCode(ctx context.Context, code string) (model.Case, error)
	GetCaseForUpdate(ctx context.Context, tx postgre.Tx, id string) (model.Case, error)
	UpdateCaseStatus(ctx context.Context, tx postgre.Tx, opts UpdateCaseStatusOptions) error
	// SetSpike flags the case outside any transaction; the projector
	// is the only writer of this column.
	SetSpike(ctx context.Context, id string) error
	ListCases(ctx context.Context, opts ListCasesOptions) ([]model.Case, error)
	CountCases(ctx context.Context, opts ListCasesOptions) (int64, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	CasesRepository
}
