package ordersvc

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookmart/model"
	"bookmart/util/hash"
)

// memState is the shared backing store for the in-memory repository fakes.
// memTx snapshots it before each unit of work and restores it when the work
// fails, mirroring a real rollback, so tests can assert the no-partial-commit
// property directly.
type memState struct {
	users  map[string]model.User
	stores map[string]model.Store
	books  map[string]model.Book // storeID + "/" + bookID
	orders map[string]model.Order
	lines  map[string][]model.OrderLine
}

func newMemState() *memState {
	return &memState{
		users:  map[string]model.User{},
		stores: map[string]model.Store{},
		books:  map[string]model.Book{},
		orders: map[string]model.Order{},
		lines:  map[string][]model.OrderLine{},
	}
}

func bookKey(storeID, bookID string) string { return storeID + "/" + bookID }

func (m *memState) addUser(id, password string, balance int64) {
	h, err := hash.HashPassword(password)
	if err != nil {
		panic(err)
	}
	m.users[id] = model.User{ID: id, PasswordHash: h, Balance: balance, CreatedAt: time.Now()}
}

func (m *memState) addStore(id, owner string) {
	m.stores[id] = model.Store{ID: id, Owner: owner}
}

func (m *memState) addBook(storeID, bookID string, stock, price int64) {
	m.books[bookKey(storeID, bookID)] = model.Book{
		StoreID: storeID, BookID: bookID, StockLevel: stock, Price: price, Title: "t-" + bookID,
	}
}

func (m *memState) stock(storeID, bookID string) int64 {
	return m.books[bookKey(storeID, bookID)].StockLevel
}

func (m *memState) balance(userID string) int64 { return m.users[userID].Balance }

// totalBalance across all users, for the conservation checks.
func (m *memState) totalBalance() int64 {
	var sum int64
	for _, u := range m.users {
		sum += u.Balance
	}
	return sum
}

func (m *memState) clone() *memState {
	c := newMemState()
	for k, v := range m.users {
		c.users[k] = v
	}
	for k, v := range m.stores {
		c.stores[k] = v
	}
	for k, v := range m.books {
		c.books[k] = v
	}
	for k, v := range m.orders {
		c.orders[k] = v
	}
	for k, v := range m.lines {
		c.lines[k] = append([]model.OrderLine(nil), v...)
	}
	return c
}

// memTx implements database.TxRunner over a memState.
type memTx struct{ st *memState }

func (t memTx) WithinTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	snap := t.st.clone()
	if err := fn(nil); err != nil {
		*t.st = *snap
		return err
	}
	return nil
}

// memUsers implements userrepo.Repo.
type memUsers struct{ st *memState }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := r.st.users[u.ID]; ok {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	u.CreatedAt = time.Now()
	r.st.users[u.ID] = *u
	return nil
}

func (r memUsers) ByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r memUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.st.users[id]
	return ok, nil
}

func (r memUsers) UpdateToken(_ context.Context, id, token, terminal string) error {
	u := r.st.users[id]
	u.Token, u.Terminal = token, terminal
	r.st.users[id] = u
	return nil
}

func (r memUsers) UpdatePassword(_ context.Context, id, passwordHash, token, terminal string) error {
	u := r.st.users[id]
	u.PasswordHash, u.Token, u.Terminal = passwordHash, token, terminal
	r.st.users[id] = u
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.st.users[id]; !ok {
		return false, nil
	}
	delete(r.st.users, id)
	for oid, o := range r.st.orders {
		if o.Buyer != nil && *o.Buyer == id {
			o.Buyer = nil
			r.st.orders[oid] = o
		}
	}
	return true, nil
}

func (r memUsers) GetForUpdate(_ context.Context, _ *sql.Tx, id string) (*model.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (r memUsers) DebitBalance(_ context.Context, _ *sql.Tx, id string, amount int64) (bool, error) {
	u, ok := r.st.users[id]
	if !ok || u.Balance < amount {
		return false, nil
	}
	u.Balance -= amount
	r.st.users[id] = u
	return true, nil
}

func (r memUsers) CreditBalance(_ context.Context, _ *sql.Tx, id string, amount int64) error {
	u, ok := r.st.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Balance += amount
	r.st.users[id] = u
	return nil
}

// memStores implements storerepo.Repo.
type memStores struct{ st *memState }

func (r memStores) Create(_ context.Context, s *model.Store) error {
	r.st.stores[s.ID] = *s
	return nil
}

func (r memStores) ByID(_ context.Context, id string) (*model.Store, error) {
	s, ok := r.st.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r memStores) ByIDTx(_ context.Context, _ *sql.Tx, id string) (*model.Store, error) {
	return r.ByID(context.Background(), id)
}

func (r memStores) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.st.stores[id]
	return ok, nil
}

// memBooks implements bookrepo.Repo.
type memBooks struct{ st *memState }

func (r memBooks) Insert(_ context.Context, b *model.Book) error {
	r.st.books[bookKey(b.StoreID, b.BookID)] = *b
	return nil
}

func (r memBooks) Exists(_ context.Context, storeID, bookID string) (bool, error) {
	_, ok := r.st.books[bookKey(storeID, bookID)]
	return ok, nil
}

func (r memBooks) ExistsTx(_ context.Context, _ *sql.Tx, storeID, bookID string) (bool, error) {
	return r.Exists(context.Background(), storeID, bookID)
}

func (r memBooks) AddStock(_ context.Context, storeID, bookID string, delta int64) (bool, error) {
	b, ok := r.st.books[bookKey(storeID, bookID)]
	if !ok {
		return false, nil
	}
	b.StockLevel += delta
	r.st.books[bookKey(storeID, bookID)] = b
	return true, nil
}

func (r memBooks) ReserveStock(_ context.Context, _ *sql.Tx, storeID, bookID string, count int64) (int64, bool, error) {
	b, ok := r.st.books[bookKey(storeID, bookID)]
	if !ok || b.StockLevel < count {
		return 0, false, nil
	}
	b.StockLevel -= count
	r.st.books[bookKey(storeID, bookID)] = b
	return b.Price, true, nil
}

func (r memBooks) ReleaseStock(_ context.Context, _ *sql.Tx, storeID, bookID string, count int64) error {
	b, ok := r.st.books[bookKey(storeID, bookID)]
	if !ok {
		return sql.ErrNoRows
	}
	b.StockLevel += count
	r.st.books[bookKey(storeID, bookID)] = b
	return nil
}

func (r memBooks) Search(_ context.Context, _ map[string]any, _ string) ([]model.Book, error) {
	var out []model.Book
	for _, b := range r.st.books {
		out = append(out, b)
	}
	return out, nil
}

// memOrders implements orderrepo.Repo.
type memOrders struct{ st *memState }

func (r memOrders) Insert(_ context.Context, _ *sql.Tx, o *model.Order, lines []model.OrderLine) error {
	if _, ok := r.st.orders[o.ID]; ok {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	r.st.orders[o.ID] = *o
	r.st.lines[o.ID] = append([]model.OrderLine(nil), lines...)
	return nil
}

func (r memOrders) GetForUpdate(_ context.Context, _ *sql.Tx, id string) (*model.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &o, nil
}

func (r memOrders) SetStatus(_ context.Context, _ *sql.Tx, id string, status model.OrderStatus) error {
	o, ok := r.st.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	r.st.orders[id] = o
	return nil
}

func (r memOrders) LinesTx(_ context.Context, _ *sql.Tx, orderID string) ([]model.OrderLine, error) {
	return append([]model.OrderLine(nil), r.st.lines[orderID]...), nil
}

func (r memOrders) Get(_ context.Context, id string) (*model.Order, error) {
	return r.GetForUpdate(context.Background(), nil, id)
}

func (r memOrders) Lines(_ context.Context, orderID string) ([]model.OrderLine, error) {
	return append([]model.OrderLine(nil), r.st.lines[orderID]...), nil
}

func (r memOrders) ListByBuyer(_ context.Context, buyerID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.st.orders {
		if o.Buyer != nil && *o.Buyer == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}
