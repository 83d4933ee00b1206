// repository/store/storeRepository.go
package storerepo

import (
	"context"
	"database/sql"

	"bookmart/model"
)

type Repo interface {
	Create(ctx context.Context, s *model.Store) error
	ByID(ctx context.Context, id string) (*model.Store, error)
	ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Store, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, s *model.Store) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stores (id, owner) VALUES ($1,$2)`, s.ID, s.Owner)
	return err
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Store, error) {
	s := &model.Store{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner FROM stores WHERE id = $1`, id).Scan(&s.ID, &s.Owner)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) ByIDTx(ctx context.Context, tx *sql.Tx, id string) (*model.Store, error) {
	s := &model.Store{}
	err := tx.QueryRowContext(ctx,
		`SELECT id, owner FROM stores WHERE id = $1`, id).Scan(&s.ID, &s.Owner)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
