// repository/user/userRepository.go
package userrepo

import (
	"context"
	"database/sql"

	"bookmart/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateToken(ctx context.Context, id, token, terminal string) error
	UpdatePassword(ctx context.Context, id, passwordHash, token, terminal string) error
	Delete(ctx context.Context, id string) (bool, error)

	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.User, error)
	DebitBalance(ctx context.Context, tx *sql.Tx, id string, amount int64) (bool, error)
	CreditBalance(ctx context.Context, tx *sql.Tx, id string, amount int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, password_hash, balance, token, terminal)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		u.ID, u.PasswordHash, u.Balance, u.Token, u.Terminal,
	).Scan(&u.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, password_hash, balance, token, terminal, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.PasswordHash, &u.Balance, &u.Token, &u.Terminal, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repo) UpdateToken(ctx context.Context, id, token, terminal string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET token = $2, terminal = $3 WHERE id = $1`,
		id, token, terminal)
	return err
}

func (r *repo) UpdatePassword(ctx context.Context, id, passwordHash, token, terminal string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, token = $3, terminal = $4 WHERE id = $1`,
		id, passwordHash, token, terminal)
	return err
}

// Delete removes the account. Orders referencing the user as buyer get
// buyer = NULL via the FK and can no longer be paid or canceled.
func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.User, error) {
	u := &model.User{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, password_hash, balance, token, terminal, created_at
		FROM users
		WHERE id = $1
		FOR UPDATE`,
		id,
	).Scan(&u.ID, &u.PasswordHash, &u.Balance, &u.Token, &u.Terminal, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DebitBalance is the check-then-decrement collapsed into one conditional
// update: it applies only while balance covers the amount, so concurrent
// debits serialize on the row and can never drive the balance negative.
func (r *repo) DebitBalance(ctx context.Context, tx *sql.Tx, id string, amount int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1
		AND balance >= $2`,
		id, amount)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *repo) CreditBalance(ctx context.Context, tx *sql.Tx, id string, amount int64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $2 WHERE id = $1`,
		id, amount)
	return err
}
