package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstore-ledger/internal/domain/ledger"
	"github.com/bookstore-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository backed by the pool
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx rebinds the repository to an open transaction
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a ledger entry and fills in its generated ID
func (r *LedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	query := `
		INSERT INTO book_transactions (book_isbn, kind, quantity, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.querier.QueryRow(ctx, query,
		entry.BookISBN,
		entry.Kind,
		entry.Quantity,
		entry.OccurredAt,
	).Scan(&entry.ID)
	if err != nil {
		r.logger.Error("Failed to create ledger entry", "isbn", entry.BookISBN, "kind", entry.Kind, "error", err)
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	return nil
}

// GetByBookISBN returns the entries for a book, newest first. The secondary
// ordering on id keeps same-timestamp entries stable.
func (r *LedgerRepository) GetByBookISBN(ctx context.Context, isbn string) ([]*ledger.Entry, error) {
	query := `
		SELECT id, book_isbn, kind, quantity, occurred_at
		FROM book_transactions
		WHERE book_isbn = $1
		ORDER BY occurred_at DESC, id DESC
	`

	rows, err := r.querier.Query(ctx, query, isbn)
	if err != nil {
		r.logger.Error("Failed to get ledger entries", "isbn", isbn, "error", err)
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*ledger.Entry, 0)
	for rows.Next() {
		var entry ledger.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.BookISBN,
			&entry.Kind,
			&entry.Quantity,
			&entry.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entry rows: %w", err)
	}

	return entries, nil
}

// CountByKind counts the entries of one kind for a book
func (r *LedgerRepository) CountByKind(ctx context.Context, isbn string, kind ledger.Kind) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM book_transactions
		WHERE book_isbn = $1 AND kind = $2
	`

	var count int64
	err := r.querier.QueryRow(ctx, query, isbn, kind).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count ledger entries", "isbn", isbn, "kind", kind, "error", err)
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	return count, nil
}
