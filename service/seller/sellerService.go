package sellersvc

import (
	"context"
	"database/sql"
	"errors"

	"bookmart/apperr"
	"bookmart/model"
	bookrepo "bookmart/repository/book"
	storerepo "bookmart/repository/store"
	userrepo "bookmart/repository/user"
	"bookmart/util/database"
)

type Service interface {
	CreateStore(ctx context.Context, userID, storeID string) error
	AddBook(ctx context.Context, userID, storeID string, book *model.Book) error
	AddStockLevel(ctx context.Context, userID, storeID, bookID string, delta int64) error
}

type service struct {
	ur userrepo.Repo
	sr storerepo.Repo
	br bookrepo.Repo
}

func New(ur userrepo.Repo, sr storerepo.Repo, br bookrepo.Repo) Service {
	return &service{ur: ur, sr: sr, br: br}
}

func (s *service) CreateStore(ctx context.Context, userID, storeID string) error {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NonExistUser(userID)
	}
	if err := s.sr.Create(ctx, &model.Store{ID: storeID, Owner: userID}); err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.ExistStore(storeID)
		}
		return apperr.Storage(err)
	}
	return nil
}

// checkOwner loads the store and rejects callers that do not own it.
func (s *service) checkOwner(ctx context.Context, userID, storeID string) error {
	st, err := s.sr.ByID(ctx, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NonExistStore(storeID)
	}
	if err != nil {
		return apperr.Storage(err)
	}
	if st.Owner != userID {
		return apperr.AuthorizationFail()
	}
	return nil
}

func (s *service) AddBook(ctx context.Context, userID, storeID string, book *model.Book) error {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NonExistUser(userID)
	}
	if err := s.checkOwner(ctx, userID, storeID); err != nil {
		return err
	}
	book.StoreID = storeID
	if err := s.br.Insert(ctx, book); err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.ExistBook(book.BookID)
		}
		return apperr.Storage(err)
	}
	return nil
}

func (s *service) AddStockLevel(ctx context.Context, userID, storeID, bookID string, delta int64) error {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NonExistUser(userID)
	}
	if err := s.checkOwner(ctx, userID, storeID); err != nil {
		return err
	}
	applied, err := s.br.AddStock(ctx, storeID, bookID, delta)
	if err != nil {
		return apperr.Storage(err)
	}
	if !applied {
		return apperr.NonExistBook(bookID)
	}
	return nil
}
