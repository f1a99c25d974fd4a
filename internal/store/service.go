// Package store implements the transactional inventory/cash ledger. A Store
// owns the in-memory cash balance and runs every multi-statement operation as
// one database transaction: catalog write, balance write and ledger entry
// commit together or not at all, and the in-memory balance is restored from a
// snapshot on any failure path.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookstore-ledger/internal/domain/book"
	"github.com/bookstore-ledger/internal/domain/cashbox"
	"github.com/bookstore-ledger/internal/domain/ledger"
	"github.com/bookstore-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Store is the ledger core. It is not safe for concurrent mutating calls; the
// design assumes a single logical actor per store instance.
type Store struct {
	db      persistence.TxBeginner
	books   book.Repository
	ledger  ledger.Repository
	cashbox cashbox.Repository
	balance decimal.Decimal
	logger  *slog.Logger
}

var _ Service = (*Store)(nil)

// New creates a Store. Call LoadBalance before serving operations so the
// in-memory balance is defined.
func New(
	db persistence.TxBeginner,
	books book.Repository,
	ledgerRepo ledger.Repository,
	cashboxRepo cashbox.Repository,
	logger *slog.Logger,
) *Store {
	return &Store{
		db:      db,
		books:   books,
		ledger:  ledgerRepo,
		cashbox: cashboxRepo,
		balance: decimal.Zero,
		logger:  logger,
	}
}

// LoadBalance establishes the authoritative in-memory cash balance. A
// persisted value wins; otherwise the seed is adopted and persisted with an
// independent commit. A returned error is a non-fatal warning: the store
// keeps working with the seed held only in memory.
func (s *Store) LoadBalance(ctx context.Context, seed decimal.Decimal) error {
	value, err := s.cashbox.Get(ctx)
	if err == nil {
		s.balance = value
		s.logger.Info("Cash balance loaded", "balance", s.balance.StringFixed(2))
		return nil
	}

	s.balance = seed
	if !errors.Is(err, cashbox.ErrBalanceNotFound) {
		return fmt.Errorf("could not read persisted balance, using seed %s in memory only: %w", seed.StringFixed(2), err)
	}

	if initErr := s.cashbox.Init(ctx, seed); initErr != nil {
		return fmt.Errorf("could not persist seed balance %s, keeping it in memory only: %w", seed.StringFixed(2), initErr)
	}

	s.logger.Info("Cash balance seeded", "balance", s.balance.StringFixed(2))
	return nil
}

// Balance returns the current in-memory cash balance
func (s *Store) Balance() decimal.Decimal {
	return s.balance
}

// Register adds a book to the catalog, funding its initial stock from the
// cash box when the balance covers the purchase cost. When it does not, the
// book is kept with quantity corrected to zero and no money moves.
func (s *Store) Register(ctx context.Context, isbn, title string, purchasePrice, salePrice decimal.Decimal, quantity int) (string, error) {
	existing, err := s.books.GetByISBN(ctx, isbn)
	if err != nil && !errors.Is(err, book.ErrBookNotFound{}) {
		return "", err
	}
	if existing != nil {
		return "", book.ErrDuplicateISBN{ISBN: isbn}
	}

	b, err := book.NewBook(isbn, title, purchasePrice, salePrice, quantity)
	if err != nil {
		return "", err
	}

	return s.runAtomic(ctx, "register", isbn, func(tx pgx.Tx) (string, error) {
		if err := s.books.WithTx(tx).Create(ctx, b); err != nil {
			return "", err
		}

		if b.Quantity == 0 {
			return fmt.Sprintf("book %q registered with 0 copies", b.Title), nil
		}

		cost := b.RestockCost(b.Quantity)
		if s.balance.LessThan(cost) {
			// Cash box cannot fund the initial stock. The book stays,
			// its quantity is corrected down to zero, and neither the
			// balance nor the ledger is touched.
			if err := s.books.WithTx(tx).UpdateQuantity(ctx, b.ISBN, 0); err != nil {
				return "", err
			}
			return fmt.Sprintf("book %q registered, initial stock not funded (cash balance %s, cost %s), quantity set to 0",
				b.Title, s.balance.StringFixed(2), cost.StringFixed(2)), nil
		}

		s.balance = s.balance.Sub(cost)
		if err := s.writeMovement(ctx, tx, b.ISBN, ledger.KindRestock, b.Quantity); err != nil {
			return "", err
		}

		return fmt.Sprintf("book %q registered with %d copies, cost %s, cash balance %s",
			b.Title, b.Quantity, cost.StringFixed(2), s.balance.StringFixed(2)), nil
	})
}

// Restock increases a book's stock and debits the cash box
func (s *Store) Restock(ctx context.Context, isbn string, quantity int) (string, error) {
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}

	b, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return "", err
	}

	cost := b.RestockCost(quantity)
	if s.balance.LessThan(cost) {
		return "", fmt.Errorf("%w: balance %s, restock cost %s",
			ErrInsufficientFunds, s.balance.StringFixed(2), cost.StringFixed(2))
	}

	return s.runAtomic(ctx, "restock", isbn, func(tx pgx.Tx) (string, error) {
		if err := s.books.WithTx(tx).UpdateQuantity(ctx, isbn, b.Quantity+quantity); err != nil {
			return "", err
		}

		s.balance = s.balance.Sub(cost)
		if err := s.writeMovement(ctx, tx, isbn, ledger.KindRestock, quantity); err != nil {
			return "", err
		}

		return fmt.Sprintf("restocked %d copies of %q, cost %s, cash balance %s",
			quantity, b.Title, cost.StringFixed(2), s.balance.StringFixed(2)), nil
	})
}

// Sell decreases a book's stock and credits the cash box
func (s *Store) Sell(ctx context.Context, isbn string, quantity int) (string, error) {
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}

	b, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return "", err
	}

	if !b.HasStock(quantity) {
		return "", fmt.Errorf("%w: %d in stock, %d requested",
			ErrInsufficientStock, b.Quantity, quantity)
	}

	income := b.SaleIncome(quantity)

	return s.runAtomic(ctx, "sell", isbn, func(tx pgx.Tx) (string, error) {
		if err := s.books.WithTx(tx).UpdateQuantity(ctx, isbn, b.Quantity-quantity); err != nil {
			return "", err
		}

		s.balance = s.balance.Add(income)
		if err := s.writeMovement(ctx, tx, isbn, ledger.KindSale, quantity); err != nil {
			return "", err
		}

		return fmt.Sprintf("sold %d copies of %q, income %s, cash balance %s",
			quantity, b.Title, income.StringFixed(2), s.balance.StringFixed(2)), nil
	})
}

// Delete removes a book. This is a single-statement operation that commits
// immediately; the transaction history disappears with the cascade on the
// foreign key.
func (s *Store) Delete(ctx context.Context, isbn string) (string, error) {
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return "", err
	}

	if err := s.books.Delete(ctx, isbn); err != nil {
		return "", err
	}

	s.logger.Info("Book deleted", "isbn", isbn)
	return fmt.Sprintf("book %s and its transaction history deleted", isbn), nil
}

// FindByISBN retrieves a single book
func (s *Store) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return s.books.GetByISBN(ctx, isbn)
}

// SearchByTitle retrieves books whose title contains the given fragment
func (s *Store) SearchByTitle(ctx context.Context, title string) ([]*book.Book, error) {
	return s.books.SearchByTitle(ctx, title)
}

// Catalog retrieves the full catalog ordered by title
func (s *Store) Catalog(ctx context.Context) ([]*book.Book, error) {
	return s.books.List(ctx)
}

// History retrieves a book's transactions, newest first
func (s *Store) History(ctx context.Context, isbn string) ([]*ledger.Entry, error) {
	return s.ledger.GetByBookISBN(ctx, isbn)
}

// RestockCount counts the restock transactions recorded for a book
func (s *Store) RestockCount(ctx context.Context, isbn string) (int64, error) {
	if _, err := s.books.GetByISBN(ctx, isbn); err != nil {
		return 0, err
	}
	return s.ledger.CountByKind(ctx, isbn, ledger.KindRestock)
}

// MostExpensive retrieves the book with the highest sale price
func (s *Store) MostExpensive(ctx context.Context) (*book.Book, error) {
	return s.books.MostExpensive(ctx)
}

// LeastExpensive retrieves the book with the lowest sale price
func (s *Store) LeastExpensive(ctx context.Context) (*book.Book, error) {
	return s.books.LeastExpensive(ctx)
}

// BestSeller retrieves the book with the largest total sold quantity
func (s *Store) BestSeller(ctx context.Context) (*book.BestSeller, error) {
	return s.books.BestSeller(ctx)
}

// runAtomic executes fn inside a database transaction with the balance
// snapshot discipline: on any error the transaction is rolled back and the
// in-memory balance is restored to its value at entry.
func (s *Store) runAtomic(ctx context.Context, op, isbn string, fn func(tx pgx.Tx) (string, error)) (string, error) {
	snapshot := s.balance

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.logger.Error("Failed to begin transaction", "op", op, "isbn", isbn, "error", err)
		return "", fmt.Errorf("failed to begin %s for %s: %w", op, isbn, err)
	}

	message, err := fn(tx)
	if err != nil {
		s.balance = snapshot
		s.logger.Error("Rolling back", "op", op, "isbn", isbn, "error", err)
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error("Rollback failed", "op", op, "isbn", isbn, "error", rbErr)
		}
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		s.balance = snapshot
		s.logger.Error("Commit failed", "op", op, "isbn", isbn, "error", err)
		return "", fmt.Errorf("failed to commit %s for %s: %w", op, isbn, err)
	}

	s.logger.Info("Operation committed", "op", op, "isbn", isbn, "balance", s.balance.StringFixed(2))
	return message, nil
}

// writeMovement persists the new balance and appends the ledger entry inside
// the current transaction.
func (s *Store) writeMovement(ctx context.Context, tx pgx.Tx, isbn string, kind ledger.Kind, quantity int) error {
	if err := s.cashbox.WithTx(tx).Set(ctx, s.balance); err != nil {
		return err
	}

	entry, err := ledger.NewEntry(isbn, kind, quantity, time.Time{})
	if err != nil {
		return err
	}

	return s.ledger.WithTx(tx).Create(ctx, entry)
}
