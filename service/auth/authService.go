package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookmart/apperr"
	"bookmart/model"
	userrepo "bookmart/repository/user"
	"bookmart/util/database"
	"bookmart/util/hash"
	"bookmart/util/token"
)

type Service interface {
	Register(ctx context.Context, userID, password string) (string, error)
	Login(ctx context.Context, userID, password, terminal string) (string, error)
	Logout(ctx context.Context, userID, tokenStr string) error
	Unregister(ctx context.Context, userID, password string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	CheckToken(ctx context.Context, userID, tokenStr string) error
	CheckPassword(ctx context.Context, userID, password string) error
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func newTerminal() string {
	return fmt.Sprintf("terminal_%d", time.Now().UnixNano())
}

// Register creates the account with a zero balance and an initial session.
func (s *service) Register(ctx context.Context, userID, password string) (string, error) {
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return "", apperr.Internal(err)
	}
	terminal := newTerminal()
	tok, err := token.Issue(s.secret, userID, terminal)
	if err != nil {
		return "", apperr.Internal(err)
	}

	u := &model.User{
		ID:           userID,
		PasswordHash: hashed,
		Balance:      0,
		Token:        tok,
		Terminal:     terminal,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return "", apperr.ExistUser(userID)
		}
		return "", apperr.Storage(err)
	}
	return tok, nil
}

func (s *service) CheckPassword(ctx context.Context, userID, password string) error {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.AuthorizationFail()
	}
	if err != nil {
		return apperr.Storage(err)
	}
	if !hash.Check(u.PasswordHash, password) {
		return apperr.AuthorizationFail()
	}
	return nil
}

// CheckToken accepts a token only when it verifies against the signing
// secret, names the right user, and matches the one stored on the user row.
// The stored-token match makes each login invalidate earlier sessions.
func (s *service) CheckToken(ctx context.Context, userID, tokenStr string) error {
	u, err := s.ur.ByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.AuthorizationFail()
	}
	if err != nil {
		return apperr.Storage(err)
	}
	if u.Token == "" || u.Token != tokenStr {
		return apperr.AuthorizationFail()
	}
	sub, err := token.Verify(s.secret, tokenStr)
	if err != nil || sub != userID {
		return apperr.AuthorizationFail()
	}
	return nil
}

func (s *service) Login(ctx context.Context, userID, password, terminal string) (string, error) {
	if err := s.CheckPassword(ctx, userID, password); err != nil {
		return "", err
	}
	tok, err := token.Issue(s.secret, userID, terminal)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if err := s.ur.UpdateToken(ctx, userID, tok, terminal); err != nil {
		return "", apperr.Storage(err)
	}
	return tok, nil
}

// Logout rotates the stored token so the presented one stops matching.
func (s *service) Logout(ctx context.Context, userID, tokenStr string) error {
	if err := s.CheckToken(ctx, userID, tokenStr); err != nil {
		return err
	}
	terminal := newTerminal()
	dummy, err := token.Issue(s.secret, userID, terminal)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.ur.UpdateToken(ctx, userID, dummy, terminal); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *service) Unregister(ctx context.Context, userID, password string) error {
	if err := s.CheckPassword(ctx, userID, password); err != nil {
		return err
	}
	ok, err := s.ur.Delete(ctx, userID)
	if err != nil {
		// stores.owner references users with no cascade, so an owner must
		// hand off or close their stores before the account can go.
		if database.IsForeignKeyViolation(err) {
			return apperr.UserOwnsStore(userID)
		}
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NonExistUser(userID)
	}
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := s.CheckPassword(ctx, userID, oldPassword); err != nil {
		return err
	}
	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	terminal := newTerminal()
	tok, err := token.Issue(s.secret, userID, terminal)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.ur.UpdatePassword(ctx, userID, hashed, tok, terminal); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
