package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository manages ledger entry persistence
type Repository interface {
	// Create stores an entry and fills in its generated ID
	Create(ctx context.Context, entry *Entry) error

	// GetByBookISBN returns the entries for a book, newest first
	GetByBookISBN(ctx context.Context, isbn string) ([]*Entry, error)

	// CountByKind counts the entries of one kind for a book
	CountByKind(ctx context.Context, isbn string, kind Kind) (int64, error)

	WithTx(tx pgx.Tx) Repository
}
