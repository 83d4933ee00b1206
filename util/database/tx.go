package database

import (
	"context"
	"database/sql"
)

// TxRunner scopes a unit of work to one database transaction: begin, run,
// commit on nil error, roll back otherwise. Every top-level store operation
// runs inside exactly one such scope.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type Runner struct{ DB *sql.DB }

func NewRunner(db *sql.DB) *Runner { return &Runner{DB: db} }

func (r *Runner) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
