package ledger

import (
	"errors"
	"time"
)

// Kind defines the two possible stock movements
type Kind string

const (
	KindSale    Kind = "sale"
	KindRestock Kind = "restock"
)

// ErrInvalidKind indicates a kind outside the two allowed values
var ErrInvalidKind = errors.New("transaction kind must be 'sale' or 'restock'")

// Entry is an immutable record of a stock movement. It is written exactly once
// per successful sell or restock and removed only when its book is deleted.
type Entry struct {
	ID         int64     `json:"id"`
	BookISBN   string    `json:"book_isbn"`
	Kind       Kind      `json:"kind"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEntry creates a ledger entry for the given movement. A zero occurredAt
// defaults to the current time.
func NewEntry(bookISBN string, kind Kind, quantity int, occurredAt time.Time) (*Entry, error) {
	if kind != KindSale && kind != KindRestock {
		return nil, ErrInvalidKind
	}
	if quantity <= 0 {
		return nil, errors.New("entry quantity must be positive")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &Entry{
		BookISBN:   bookISBN,
		Kind:       kind,
		Quantity:   quantity,
		OccurredAt: occurredAt,
	}, nil
}
