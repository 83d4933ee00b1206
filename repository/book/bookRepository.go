// repository/book/bookRepository.go
package bookrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookmart/model"
)

type Repo interface {
	Insert(ctx context.Context, b *model.Book) error
	Exists(ctx context.Context, storeID, bookID string) (bool, error)
	ExistsTx(ctx context.Context, tx *sql.Tx, storeID, bookID string) (bool, error)
	AddStock(ctx context.Context, storeID, bookID string, delta int64) (bool, error)

	ReserveStock(ctx context.Context, tx *sql.Tx, storeID, bookID string, count int64) (price int64, applied bool, err error)
	ReleaseStock(ctx context.Context, tx *sql.Tx, storeID, bookID string, count int64) error

	Search(ctx context.Context, equals map[string]any, titleKeyword string) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookColumns = `store_id, book_id, stock_level, price,
	title, author, publisher, original_title, translator, pub_year, pages,
	binding, isbn, currency_unit, tags, pictures, author_intro, book_intro, content`

func (r *repo) Insert(ctx context.Context, b *model.Book) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
		b.StoreID, b.BookID, b.StockLevel, b.Price,
		b.Title, b.Author, b.Publisher, b.OriginalTitle, b.Translator, b.PubYear, b.Pages,
		b.Binding, b.ISBN, b.CurrencyUnit, b.Tags, b.Pictures, b.AuthorIntro, b.BookIntro, b.Content)
	return err
}

func (r *repo) Exists(ctx context.Context, storeID, bookID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE store_id = $1 AND book_id = $2)`,
		storeID, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) ExistsTx(ctx context.Context, tx *sql.Tx, storeID, bookID string) (bool, error) {
	var ok bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE store_id = $1 AND book_id = $2)`,
		storeID, bookID).Scan(&ok)
	return ok, err
}

func (r *repo) AddStock(ctx context.Context, storeID, bookID string, delta int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET stock_level = stock_level + $3
		WHERE store_id = $1 AND book_id = $2`,
		storeID, bookID, delta)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ReserveStock decrements stock for one order line, guarded so a concurrent
// reservation that leaves insufficient stock makes this one fail instead of
// pushing the level negative. The price returned is the snapshot read at
// decrement time.
func (r *repo) ReserveStock(ctx context.Context, tx *sql.Tx, storeID, bookID string, count int64) (int64, bool, error) {
	var price int64
	err := tx.QueryRowContext(ctx, `
		UPDATE books
		SET stock_level = stock_level - $3
		WHERE store_id = $1 AND book_id = $2
		AND stock_level >= $3
		RETURNING price`,
		storeID, bookID, count).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return price, true, nil
}

func (r *repo) ReleaseStock(ctx context.Context, tx *sql.Tx, storeID, bookID string, count int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE books
		SET stock_level = stock_level + $3
		WHERE store_id = $1 AND book_id = $2`,
		storeID, bookID, count)
	return err
}

// Search filters by exact column matches plus an optional title substring.
// Callers must pass only whitelisted column names in equals.
func (r *repo) Search(ctx context.Context, equals map[string]any, titleKeyword string) ([]model.Book, error) {
	var (
		where []string
		args  []any
	)
	for col, v := range equals {
		args = append(args, v)
		where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if titleKeyword != "" {
		args = append(args, "%"+titleKeyword+"%")
		where = append(where, fmt.Sprintf("title LIKE $%d", len(args)))
	}
	q := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY store_id, book_id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.StoreID, &b.BookID, &b.StockLevel, &b.Price,
			&b.Title, &b.Author, &b.Publisher, &b.OriginalTitle, &b.Translator, &b.PubYear, &b.Pages,
			&b.Binding, &b.ISBN, &b.CurrencyUnit, &b.Tags, &b.Pictures, &b.AuthorIntro, &b.BookIntro, &b.Content,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
