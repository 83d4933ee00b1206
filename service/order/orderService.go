// Package ordersvc holds the order lifecycle: creation with inventory
// reservation, payment into escrow, shipment, receipt (which pays the
// seller) and cancellation (which releases stock and refunds escrow).
//
// Every operation is one transaction: guarded reads, conditional writes,
// commit. A guard failure or storage error rolls the whole thing back, so a
// non-ok result never leaves partial state behind.
package ordersvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookmart/apperr"
	"bookmart/model"
	bookrepo "bookmart/repository/book"
	orderrepo "bookmart/repository/order"
	storerepo "bookmart/repository/store"
	userrepo "bookmart/repository/user"
	"bookmart/util/database"
	"bookmart/util/hash"
)

// Line is one requested (book, count) pair at order creation.
type Line struct {
	BookID string
	Count  int64
}

type OrderDetail struct {
	Order model.Order       `json:"order"`
	Lines []model.OrderLine `json:"lines"`
}

type Service interface {
	Create(ctx context.Context, buyerID, storeID string, items []Line) (string, error)
	Pay(ctx context.Context, userID, password, orderID string) error
	Ship(ctx context.Context, userID, storeID, orderID string) error
	Receive(ctx context.Context, userID, password, orderID string) error
	Cancel(ctx context.Context, userID, password, orderID string) error

	ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
	Get(ctx context.Context, orderID string) (*OrderDetail, error)
}

type service struct {
	tx     database.TxRunner
	users  userrepo.Repo
	stores storerepo.Repo
	books  bookrepo.Repo
	orders orderrepo.Repo
	ttl    time.Duration
	log    *slog.Logger
	now    func() time.Time
}

func New(tx database.TxRunner, users userrepo.Repo, stores storerepo.Repo, books bookrepo.Repo, orders orderrepo.Repo, ttl time.Duration, log *slog.Logger) Service {
	return &service{
		tx:     tx,
		users:  users,
		stores: stores,
		books:  books,
		orders: orders,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// Create reserves stock for every line and records the order as unpaid.
// Prices are snapshotted at reservation time. Any line failing leaves no
// reservation behind: the enclosing transaction rolls back wholesale.
// No money moves at creation.
func (s *service) Create(ctx context.Context, buyerID, storeID string, items []Line) (string, error) {
	ok, err := s.users.Exists(ctx, buyerID)
	if err != nil {
		return "", apperr.Storage(err)
	}
	if !ok {
		return "", apperr.NonExistUser(buyerID)
	}
	ok, err = s.stores.Exists(ctx, storeID)
	if err != nil {
		return "", apperr.Storage(err)
	}
	if !ok {
		return "", apperr.NonExistStore(storeID)
	}

	orderID := fmt.Sprintf("%s_%s_%s", buyerID, storeID, uuid.NewString())
	createdAt := s.now()

	err = s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		var total int64
		lines := make([]model.OrderLine, 0, len(items))
		for _, it := range items {
			price, applied, err := s.books.ReserveStock(ctx, tx, storeID, it.BookID, it.Count)
			if err != nil {
				return err
			}
			if !applied {
				exists, err := s.books.ExistsTx(ctx, tx, storeID, it.BookID)
				if err != nil {
					return err
				}
				if !exists {
					return apperr.NonExistBook(it.BookID)
				}
				return apperr.StockLevelLow(it.BookID)
			}
			total += it.Count * price
			lines = append(lines, model.OrderLine{
				OrderID: orderID,
				BookID:  it.BookID,
				Count:   it.Count,
				Price:   price,
			})
		}

		buyer := buyerID
		o := &model.Order{
			ID:         orderID,
			Buyer:      &buyer,
			StoreID:    storeID,
			TotalPrice: total,
			Status:     model.OrderUnpaid,
			CreatedAt:  createdAt,
		}
		if err := s.orders.Insert(ctx, tx, o, lines); err != nil {
			if database.IsUniqueViolation(err) {
				// The uuid suffix makes a collision an invariant violation,
				// not a retried case.
				s.log.Error("order id collision", "order_id", orderID)
				return apperr.ExistOrder(orderID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", apperr.Wrap(err)
	}
	return orderID, nil
}

// Pay debits the buyer by the snapshot total and holds the funds in escrow;
// the seller is credited only at Receive. An order past the expiry window
// is canceled in this same transaction and Pay reports the new state.
func (s *service) Pay(ctx context.Context, userID, password, orderID string) error {
	expired := false
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		o, err := s.orders.GetForUpdate(ctx, tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistOrder(orderID)
		}
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(model.OrderPaid) {
			return apperr.OrderStatusError(string(o.Status))
		}
		if o.Buyer == nil {
			return apperr.NonExistUser(userID)
		}
		if *o.Buyer != userID {
			return apperr.AuthorizationFail()
		}

		u, err := s.users.GetForUpdate(ctx, tx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistUser(userID)
		}
		if err != nil {
			return err
		}
		if !hash.Check(u.PasswordHash, password) {
			return apperr.AuthorizationFail()
		}

		// Expiry beats funds: an expired order is auto-canceled here, the
		// commit persists the cancellation, and the caller gets an order
		// state error reporting "canceled".
		if s.now().Sub(o.CreatedAt) > s.ttl {
			expired = true
			return s.cancelLocked(ctx, tx, o)
		}

		applied, err := s.users.DebitBalance(ctx, tx, userID, o.TotalPrice)
		if err != nil {
			return err
		}
		if !applied {
			return apperr.NotSufficientFund(orderID)
		}
		return s.orders.SetStatus(ctx, tx, orderID, model.OrderPaid)
	})
	if err != nil {
		return apperr.Wrap(err)
	}
	if expired {
		return apperr.OrderStatusError(string(model.OrderCanceled))
	}
	return nil
}

// Ship moves a paid order to delivered. Seller-side: the caller must own
// the store and the order must belong to it.
func (s *service) Ship(ctx context.Context, userID, storeID, orderID string) error {
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		st, err := s.stores.ByIDTx(ctx, tx, storeID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistStore(storeID)
		}
		if err != nil {
			return err
		}
		if st.Owner != userID {
			return apperr.AuthorizationFail()
		}

		o, err := s.orders.GetForUpdate(ctx, tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistOrder(orderID)
		}
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(model.OrderDelivered) {
			return apperr.OrderStatusError(string(o.Status))
		}
		if o.StoreID != storeID {
			return apperr.StoreMismatch(o.StoreID, storeID)
		}
		return s.orders.SetStatus(ctx, tx, orderID, model.OrderDelivered)
	})
	return apperr.Wrap(err)
}

// Receive confirms delivery and completes the escrow: the store owner is
// credited by the snapshot total, exactly once.
func (s *service) Receive(ctx context.Context, userID, password, orderID string) error {
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		u, err := s.users.GetForUpdate(ctx, tx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistUser(userID)
		}
		if err != nil {
			return err
		}
		if !hash.Check(u.PasswordHash, password) {
			return apperr.AuthorizationFail()
		}

		o, err := s.orders.GetForUpdate(ctx, tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistOrder(orderID)
		}
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(model.OrderFinished) {
			return apperr.OrderStatusError(string(o.Status))
		}
		if o.Buyer == nil || *o.Buyer != userID {
			var buyer string
			if o.Buyer != nil {
				buyer = *o.Buyer
			}
			return apperr.UserMismatch(buyer, userID)
		}

		st, err := s.stores.ByIDTx(ctx, tx, o.StoreID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistStore(o.StoreID)
		}
		if err != nil {
			return err
		}
		if err := s.users.CreditBalance(ctx, tx, st.Owner, o.TotalPrice); err != nil {
			return err
		}
		return s.orders.SetStatus(ctx, tx, orderID, model.OrderFinished)
	})
	return apperr.Wrap(err)
}

// Cancel releases reserved stock and, when funds were escrowed at payment,
// refunds the buyer. Terminal orders cannot be canceled.
func (s *service) Cancel(ctx context.Context, userID, password, orderID string) error {
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		u, err := s.users.GetForUpdate(ctx, tx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistUser(userID)
		}
		if err != nil {
			return err
		}
		if !hash.Check(u.PasswordHash, password) {
			return apperr.AuthorizationFail()
		}

		o, err := s.orders.GetForUpdate(ctx, tx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NonExistOrder(orderID)
		}
		if err != nil {
			return err
		}
		if !o.Status.CanTransitionTo(model.OrderCanceled) {
			return apperr.OrderStatusError(string(o.Status))
		}
		if o.Buyer == nil || *o.Buyer != userID {
			var buyer string
			if o.Buyer != nil {
				buyer = *o.Buyer
			}
			return apperr.UserMismatch(buyer, userID)
		}
		return s.cancelLocked(ctx, tx, o)
	})
	return apperr.Wrap(err)
}

// cancelLocked releases every reserved line and refunds the escrowed total
// when the order had been paid. The caller holds the order row lock and has
// already validated the transition.
func (s *service) cancelLocked(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	lines, err := s.orders.LinesTx(ctx, tx, o.ID)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := s.books.ReleaseStock(ctx, tx, o.StoreID, l.BookID, l.Count); err != nil {
			return err
		}
	}
	// Funds were debited at payment and never reached the seller, so the
	// refund goes back to the buyer.
	if (o.Status == model.OrderPaid || o.Status == model.OrderDelivered) && o.Buyer != nil {
		if err := s.users.CreditBalance(ctx, tx, *o.Buyer, o.TotalPrice); err != nil {
			return err
		}
	}
	return s.orders.SetStatus(ctx, tx, o.ID, model.OrderCanceled)
}

func (s *service) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	ok, err := s.users.Exists(ctx, buyerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if !ok {
		return nil, apperr.NonExistUser(buyerID)
	}
	out, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*OrderDetail, error) {
	o, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NonExistOrder(orderID)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	lines, err := s.orders.Lines(ctx, orderID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &OrderDetail{Order: *o, Lines: lines}, nil
}
