package book

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines catalog persistence operations
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByISBN(ctx context.Context, isbn string) (*Book, error)
	SearchByTitle(ctx context.Context, title string) ([]*Book, error)
	List(ctx context.Context) ([]*Book, error)

	// UpdateQuantity overwrites the stock count of a book
	UpdateQuantity(ctx context.Context, isbn string, quantity int) error
	Delete(ctx context.Context, isbn string) error

	// MostExpensive and LeastExpensive return nil when the catalog is empty.
	// Ties break on the lowest ISBN so repeated calls are deterministic.
	MostExpensive(ctx context.Context) (*Book, error)
	LeastExpensive(ctx context.Context) (*Book, error)

	// BestSeller returns nil when no sale has been recorded yet
	BestSeller(ctx context.Context) (*BestSeller, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrBookNotFound indicates a missing catalog entry
type ErrBookNotFound struct {
	ISBN string
}

func (e ErrBookNotFound) Error() string {
	return "book not found: " + e.ISBN
}

// Is matches any ErrBookNotFound when the target carries an empty ISBN
func (e ErrBookNotFound) Is(target error) bool {
	t, ok := target.(ErrBookNotFound)
	if !ok {
		return false
	}
	if t.ISBN == "" {
		return true
	}
	return e.ISBN == t.ISBN
}

// ErrDuplicateISBN indicates an ISBN uniqueness violation
type ErrDuplicateISBN struct {
	ISBN string
}

func (e ErrDuplicateISBN) Error() string {
	return "book with ISBN already exists: " + e.ISBN
}

// Is matches any ErrDuplicateISBN when the target carries an empty ISBN
func (e ErrDuplicateISBN) Is(target error) bool {
	t, ok := target.(ErrDuplicateISBN)
	if !ok {
		return false
	}
	if t.ISBN == "" {
		return true
	}
	return e.ISBN == t.ISBN
}
