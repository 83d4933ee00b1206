package walletsvc

import (
	"context"
	"database/sql"
	"errors"

	"bookmart/apperr"
	"bookmart/model"
	authsvc "bookmart/service/auth"
	"bookmart/util/database"
)

// Repo is the slice of the user repository the wallet needs.
type Repo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.User, error)
	CreditBalance(ctx context.Context, tx *sql.Tx, id string, amount int64) error
}

type Service interface {
	// AddFunds is the external funding entry point: an admin-style top-up
	// with no ceiling.
	AddFunds(ctx context.Context, userID, password string, amount int64) error
	Balance(ctx context.Context, userID string) (int64, error)
}

type service struct {
	tx   database.TxRunner
	r    Repo
	auth authsvc.Service
}

func New(tx database.TxRunner, r Repo, auth authsvc.Service) Service {
	return &service{tx: tx, r: r, auth: auth}
}

func (s *service) AddFunds(ctx context.Context, userID, password string, amount int64) error {
	if err := s.auth.CheckPassword(ctx, userID, password); err != nil {
		return err
	}
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.r.GetForUpdate(ctx, tx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NonExistUser(userID)
			}
			return err
		}
		return s.r.CreditBalance(ctx, tx, userID, amount)
	})
	return apperr.Wrap(err)
}

func (s *service) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		u, err := s.r.GetForUpdate(ctx, tx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistUser(userID)
		}
		if err != nil {
			return err
		}
		balance = u.Balance
		return nil
	})
	if err != nil {
		return 0, apperr.Wrap(err)
	}
	return balance, nil
}
