package store

import (
	"context"
	"errors"

	"github.com/bookstore-ledger/internal/domain/book"
	"github.com/bookstore-ledger/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Precondition errors detected before any write
var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds in cash box")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service exposes the bookstore ledger operations to the HTTP layer.
// Mutating operations return a human-readable outcome message on success and
// a typed error on failure; callers must serialize mutating calls against a
// given store instance.
type Service interface {
	// Register adds a book to the catalog. With a positive initial quantity
	// it also funds the initial stock from the cash box when the balance
	// covers it, otherwise the book is kept with zero stock.
	// Returns book.ErrDuplicateISBN if the ISBN is already registered.
	Register(ctx context.Context, isbn, title string, purchasePrice, salePrice decimal.Decimal, quantity int) (string, error)

	// Restock increases a book's stock, paying purchase price per copy out
	// of the cash box. Returns ErrInvalidQuantity, book.ErrBookNotFound or
	// ErrInsufficientFunds before any write happens.
	Restock(ctx context.Context, isbn string, quantity int) (string, error)

	// Sell decreases a book's stock, crediting sale price per copy to the
	// cash box. Returns ErrInvalidQuantity, book.ErrBookNotFound or
	// ErrInsufficientStock before any write happens.
	Sell(ctx context.Context, isbn string, quantity int) (string, error)

	// Delete removes a book and, via cascade, its transaction history.
	// Returns book.ErrBookNotFound if the ISBN is unknown.
	Delete(ctx context.Context, isbn string) (string, error)

	FindByISBN(ctx context.Context, isbn string) (*book.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]*book.Book, error)
	Catalog(ctx context.Context) ([]*book.Book, error)
	History(ctx context.Context, isbn string) ([]*ledger.Entry, error)

	// RestockCount counts the restock transactions recorded for a book.
	// Returns book.ErrBookNotFound if the ISBN is unknown.
	RestockCount(ctx context.Context, isbn string) (int64, error)

	MostExpensive(ctx context.Context) (*book.Book, error)
	LeastExpensive(ctx context.Context) (*book.Book, error)
	BestSeller(ctx context.Context) (*book.BestSeller, error)

	// Balance returns the current in-memory cash balance
	Balance() decimal.Decimal
}
