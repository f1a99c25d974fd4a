// Package postgres provides PostgreSQL implementations of the domain
// repositories. Each repository can run against the connection pool or be
// rebound to an open transaction with WithTx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookstore-ledger/internal/domain/book"
	"github.com/bookstore-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// BookRepository implements the book.Repository interface for PostgreSQL
type BookRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewBookRepository creates a new PostgreSQL catalog repository backed by the pool
func NewBookRepository(logger *slog.Logger, db *persistence.PostgresDB) book.Repository {
	return &BookRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx rebinds the repository to an open transaction so catalog writes can
// commit or roll back together with ledger and balance writes.
func (r *BookRepository) WithTx(tx pgx.Tx) book.Repository {
	return &BookRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const bookColumns = "isbn, title, purchase_price, sale_price, quantity, created_at, updated_at"

// Create stores a new catalog entry
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (isbn, title, purchase_price, sale_price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		b.ISBN,
		b.Title,
		b.PurchasePrice,
		b.SalePrice,
		b.Quantity,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create book", "isbn", b.ISBN, "error", err)
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

// GetByISBN retrieves a catalog entry by its ISBN
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	query := `
		SELECT isbn, title, purchase_price, sale_price, quantity, created_at, updated_at
		FROM books
		WHERE isbn = $1
	`

	b, err := r.scanBook(r.querier.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound{ISBN: isbn}
		}
		r.logger.Error("Failed to get book", "isbn", isbn, "error", err)
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return b, nil
}

// SearchByTitle returns the books whose title contains the given fragment,
// matched case-insensitively and ordered by title.
func (r *BookRepository) SearchByTitle(ctx context.Context, title string) ([]*book.Book, error) {
	query := `
		SELECT isbn, title, purchase_price, sale_price, quantity, created_at, updated_at
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY title ASC, isbn ASC
	`

	rows, err := r.querier.Query(ctx, query, title)
	if err != nil {
		r.logger.Error("Failed to search books by title", "title", title, "error", err)
		return nil, fmt.Errorf("failed to search books by title: %w", err)
	}
	defer rows.Close()

	return r.collectBooks(rows)
}

// List returns the full catalog ordered by title
func (r *BookRepository) List(ctx context.Context) ([]*book.Book, error) {
	query := `
		SELECT isbn, title, purchase_price, sale_price, quantity, created_at, updated_at
		FROM books
		ORDER BY title ASC, isbn ASC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list books", "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	return r.collectBooks(rows)
}

// UpdateQuantity overwrites the stock count of a book
func (r *BookRepository) UpdateQuantity(ctx context.Context, isbn string, quantity int) error {
	query := `
		UPDATE books
		SET quantity = $1, updated_at = NOW()
		WHERE isbn = $2
	`

	result, err := r.querier.Exec(ctx, query, quantity, isbn)
	if err != nil {
		r.logger.Error("Failed to update book quantity", "isbn", isbn, "error", err)
		return fmt.Errorf("failed to update book quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound{ISBN: isbn}
	}

	return nil
}

// Delete removes a catalog entry. The transaction history goes with it via
// the ON DELETE CASCADE constraint, no separate cleanup statement.
func (r *BookRepository) Delete(ctx context.Context, isbn string) error {
	query := `DELETE FROM books WHERE isbn = $1`

	result, err := r.querier.Exec(ctx, query, isbn)
	if err != nil {
		r.logger.Error("Failed to delete book", "isbn", isbn, "error", err)
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return book.ErrBookNotFound{ISBN: isbn}
	}

	return nil
}

// MostExpensive returns the book with the highest sale price, or nil for an
// empty catalog. Ties break on the lowest ISBN.
func (r *BookRepository) MostExpensive(ctx context.Context) (*book.Book, error) {
	query := `
		SELECT isbn, title, purchase_price, sale_price, quantity, created_at, updated_at
		FROM books
		ORDER BY sale_price DESC, isbn ASC
		LIMIT 1
	`

	b, err := r.scanBook(r.querier.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get most expensive book", "error", err)
		return nil, fmt.Errorf("failed to get most expensive book: %w", err)
	}

	return b, nil
}

// LeastExpensive returns the book with the lowest sale price, or nil for an
// empty catalog. Ties break on the lowest ISBN.
func (r *BookRepository) LeastExpensive(ctx context.Context) (*book.Book, error) {
	query := `
		SELECT isbn, title, purchase_price, sale_price, quantity, created_at, updated_at
		FROM books
		ORDER BY sale_price ASC, isbn ASC
		LIMIT 1
	`

	b, err := r.scanBook(r.querier.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get least expensive book", "error", err)
		return nil, fmt.Errorf("failed to get least expensive book: %w", err)
	}

	return b, nil
}

// BestSeller returns the book with the largest total sold quantity together
// with that total, or nil when no sale has been recorded. Ties break on the
// lowest ISBN.
func (r *BookRepository) BestSeller(ctx context.Context) (*book.BestSeller, error) {
	query := `
		SELECT b.isbn, b.title, b.purchase_price, b.sale_price, b.quantity, b.created_at, b.updated_at,
		       SUM(t.quantity) AS total_sold
		FROM books b
		JOIN book_transactions t ON b.isbn = t.book_isbn
		WHERE t.kind = 'sale'
		GROUP BY b.isbn, b.title, b.purchase_price, b.sale_price, b.quantity, b.created_at, b.updated_at
		ORDER BY total_sold DESC, b.isbn ASC
		LIMIT 1
	`

	var result book.BestSeller
	err := r.querier.QueryRow(ctx, query).Scan(
		&result.Book.ISBN,
		&result.Book.Title,
		&result.Book.PurchasePrice,
		&result.Book.SalePrice,
		&result.Book.Quantity,
		&result.Book.CreatedAt,
		&result.Book.UpdatedAt,
		&result.TotalSold,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get best seller", "error", err)
		return nil, fmt.Errorf("failed to get best seller: %w", err)
	}

	return &result, nil
}

func (r *BookRepository) scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ISBN,
		&b.Title,
		&b.PurchasePrice,
		&b.SalePrice,
		&b.Quantity,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepository) collectBooks(rows pgx.Rows) ([]*book.Book, error) {
	books := make([]*book.Book, 0)
	for rows.Next() {
		var b book.Book
		err := rows.Scan(
			&b.ISBN,
			&b.Title,
			&b.PurchasePrice,
			&b.SalePrice,
			&b.Quantity,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book rows: %w", err)
	}

	return books, nil
}
