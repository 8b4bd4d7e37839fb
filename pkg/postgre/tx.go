// Package postgre holds shared PostgreSQL transaction plumbing used by
// the repositories. A single Tx can span repositories from several
// domains, so multi-step units of work commit or roll back together.
package postgre

import (
	"database/sql"
	"errors"
)

// ErrInvalidTx means a transaction from a different store implementation
// was passed to a PostgreSQL repository.
var ErrInvalidTx = errors.New("transaction type does not belong to this store")

// Tx scopes repository mutations to one transaction. Row and advisory
// locks taken through it are held until Commit or Rollback.
type Tx interface {
	Commit() error
	Rollback() error
}

// SQLTx unwraps the underlying *sql.Tx.
func SQLTx(tx Tx) (*sql.Tx, error) {
	t, ok := tx.(*sql.Tx)
	if !ok {
		return nil, ErrInvalidTx
	}
	return t, nil
}
