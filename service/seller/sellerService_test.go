package sellersvc

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"bookmart/apperr"
	"bookmart/model"
)

// shop is a minimal in-memory backing for the three repositories the seller
// service touches.
type shop struct {
	users  map[string]bool
	stores map[string]model.Store
	books  map[string]model.Book // storeID + "/" + bookID
}

func newShop() *shop {
	return &shop{users: map[string]bool{}, stores: map[string]model.Store{}, books: map[string]model.Book{}}
}

func key(storeID, bookID string) string { return storeID + "/" + bookID }

type shopUsers struct{ s *shop }

func (r shopUsers) Create(context.Context, *model.User) error          { panic("not used") }
func (r shopUsers) ByID(context.Context, string) (*model.User, error)  { panic("not used") }
func (r shopUsers) Exists(_ context.Context, id string) (bool, error)  { return r.s.users[id], nil }
func (r shopUsers) UpdateToken(context.Context, string, string, string) error {
	panic("not used")
}
func (r shopUsers) UpdatePassword(context.Context, string, string, string, string) error {
	panic("not used")
}
func (r shopUsers) Delete(context.Context, string) (bool, error) { panic("not used") }
func (r shopUsers) GetForUpdate(context.Context, *sql.Tx, string) (*model.User, error) {
	panic("not used")
}
func (r shopUsers) DebitBalance(context.Context, *sql.Tx, string, int64) (bool, error) {
	panic("not used")
}
func (r shopUsers) CreditBalance(context.Context, *sql.Tx, string, int64) error {
	panic("not used")
}

type shopStores struct{ s *shop }

func (r shopStores) Create(_ context.Context, st *model.Store) error {
	if _, ok := r.s.stores[st.ID]; ok {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	r.s.stores[st.ID] = *st
	return nil
}

func (r shopStores) ByID(_ context.Context, id string) (*model.Store, error) {
	st, ok := r.s.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &st, nil
}

func (r shopStores) ByIDTx(_ context.Context, _ *sql.Tx, id string) (*model.Store, error) {
	return r.ByID(context.Background(), id)
}

func (r shopStores) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.s.stores[id]
	return ok, nil
}

type shopBooks struct{ s *shop }

func (r shopBooks) Insert(_ context.Context, b *model.Book) error {
	if _, ok := r.s.books[key(b.StoreID, b.BookID)]; ok {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	r.s.books[key(b.StoreID, b.BookID)] = *b
	return nil
}

func (r shopBooks) Exists(_ context.Context, storeID, bookID string) (bool, error) {
	_, ok := r.s.books[key(storeID, bookID)]
	return ok, nil
}

func (r shopBooks) ExistsTx(_ context.Context, _ *sql.Tx, storeID, bookID string) (bool, error) {
	return r.Exists(context.Background(), storeID, bookID)
}

func (r shopBooks) AddStock(_ context.Context, storeID, bookID string, delta int64) (bool, error) {
	b, ok := r.s.books[key(storeID, bookID)]
	if !ok {
		return false, nil
	}
	b.StockLevel += delta
	r.s.books[key(storeID, bookID)] = b
	return true, nil
}

func (r shopBooks) ReserveStock(context.Context, *sql.Tx, string, string, int64) (int64, bool, error) {
	panic("not used")
}

func (r shopBooks) ReleaseStock(context.Context, *sql.Tx, string, string, int64) error {
	panic("not used")
}

func (r shopBooks) Search(context.Context, map[string]any, string) ([]model.Book, error) {
	panic("not used")
}

func newTestService(s *shop) Service {
	return New(shopUsers{s}, shopStores{s}, shopBooks{s})
}

func TestCreateStore(t *testing.T) {
	sh := newShop()
	sh.users["seller"] = true
	s := newTestService(sh)

	require.NoError(t, s.CreateStore(context.Background(), "seller", "st1"))
	require.Equal(t, "seller", sh.stores["st1"].Owner)

	err := s.CreateStore(context.Background(), "seller", "st1")
	require.Equal(t, apperr.CodeExistStore, apperr.CodeOf(err))

	err = s.CreateStore(context.Background(), "ghost", "st2")
	require.Equal(t, apperr.CodeNonExistUser, apperr.CodeOf(err))
}

func TestAddBook(t *testing.T) {
	sh := newShop()
	sh.users["seller"] = true
	sh.users["rival"] = true
	sh.stores["st1"] = model.Store{ID: "st1", Owner: "seller"}
	s := newTestService(sh)

	b := &model.Book{BookID: "bk1", Title: "Dune", Price: 120, StockLevel: 5}
	require.NoError(t, s.AddBook(context.Background(), "seller", "st1", b))
	got := sh.books[key("st1", "bk1")]
	require.Equal(t, "st1", got.StoreID)
	require.EqualValues(t, 5, got.StockLevel)

	err := s.AddBook(context.Background(), "seller", "st1", &model.Book{BookID: "bk1"})
	require.Equal(t, apperr.CodeExistBook, apperr.CodeOf(err))

	err = s.AddBook(context.Background(), "rival", "st1", &model.Book{BookID: "bk2"})
	require.Equal(t, apperr.CodeAuthorizationFail, apperr.CodeOf(err))

	err = s.AddBook(context.Background(), "seller", "nope", &model.Book{BookID: "bk2"})
	require.Equal(t, apperr.CodeNonExistStore, apperr.CodeOf(err))

	err = s.AddBook(context.Background(), "ghost", "st1", &model.Book{BookID: "bk2"})
	require.Equal(t, apperr.CodeNonExistUser, apperr.CodeOf(err))
}

func TestAddStockLevel(t *testing.T) {
	sh := newShop()
	sh.users["seller"] = true
	sh.stores["st1"] = model.Store{ID: "st1", Owner: "seller"}
	sh.books[key("st1", "bk1")] = model.Book{StoreID: "st1", BookID: "bk1", StockLevel: 5}
	s := newTestService(sh)

	require.NoError(t, s.AddStockLevel(context.Background(), "seller", "st1", "bk1", 7))
	require.EqualValues(t, 12, sh.books[key("st1", "bk1")].StockLevel)

	err := s.AddStockLevel(context.Background(), "seller", "st1", "missing", 1)
	require.Equal(t, apperr.CodeNonExistBook, apperr.CodeOf(err))

	err = s.AddStockLevel(context.Background(), "ghost", "st1", "bk1", 1)
	require.Equal(t, apperr.CodeNonExistUser, apperr.CodeOf(err))
}
