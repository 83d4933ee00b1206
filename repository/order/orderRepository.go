// repository/order/orderRepository.go
package orderrepo

import (
	"context"
	"database/sql"

	"bookmart/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, o *model.Order, lines []model.OrderLine) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Order, error)
	SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.OrderStatus) error
	LinesTx(ctx context.Context, tx *sql.Tx, orderID string) ([]model.OrderLine, error)

	Get(ctx context.Context, id string) (*model.Order, error)
	Lines(ctx context.Context, orderID string) ([]model.OrderLine, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, o *model.Order, lines []model.OrderLine) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, buyer, store_id, total_price, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.Buyer, o.StoreID, o.TotalPrice, o.Status, o.CreatedAt)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO order_lines (order_id, book_id, count, price)
		VALUES ($1,$2,$3,$4)`
	for _, l := range lines {
		if _, err := tx.ExecContext(ctx, q, l.OrderID, l.BookID, l.Count, l.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*model.Order, error) {
	o := &model.Order{}
	err := tx.QueryRowContext(ctx, `
		SELECT id, buyer, store_id, total_price, status, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`,
		id,
	).Scan(&o.ID, &o.Buyer, &o.StoreID, &o.TotalPrice, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, id string, status model.OrderStatus) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *repo) LinesTx(ctx context.Context, tx *sql.Tx, orderID string) ([]model.OrderLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT order_id, book_id, count, price
		FROM order_lines
		WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, err
	}
	return scanLines(rows)
}

func (r *repo) Get(ctx context.Context, id string) (*model.Order, error) {
	o := &model.Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, buyer, store_id, total_price, status, created_at
		FROM orders
		WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Buyer, &o.StoreID, &o.TotalPrice, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repo) Lines(ctx context.Context, orderID string) ([]model.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, book_id, count, price
		FROM order_lines
		WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, err
	}
	return scanLines(rows)
}

func (r *repo) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, buyer, store_id, total_price, status, created_at
		FROM orders
		WHERE buyer = $1
		ORDER BY created_at DESC, id DESC`,
		buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Buyer, &o.StoreID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanLines(rows *sql.Rows) ([]model.OrderLine, error) {
	defer rows.Close()
	var out []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.OrderID, &l.BookID, &l.Count, &l.Price); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
