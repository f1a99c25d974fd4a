package book

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrEmptyISBN        = errors.New("isbn cannot be empty")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// Book represents a catalog entry. Prices are fixed-point decimals; Quantity
// is the current stock count and never goes negative.
type Book struct {
	ISBN          string          `json:"isbn"`
	Title         string          `json:"title"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewBook creates a new catalog entry with the given parameters
func NewBook(isbn, title string, purchasePrice, salePrice decimal.Decimal, quantity int) (*Book, error) {
	if isbn == "" {
		return nil, ErrEmptyISBN
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	return &Book{
		ISBN:          isbn,
		Title:         title,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Quantity:      quantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

// RestockCost returns the purchase cost of acquiring the given number of copies
func (b *Book) RestockCost(quantity int) decimal.Decimal {
	return b.PurchasePrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// SaleIncome returns the income from selling the given number of copies
func (b *Book) SaleIncome(quantity int) decimal.Decimal {
	return b.SalePrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// HasStock reports whether the book can cover a sale of the given quantity
func (b *Book) HasStock(quantity int) bool {
	return b.Quantity >= quantity
}

// BestSeller is a catalog entry annotated with its total sold quantity.
// Produced only by the best-seller query.
type BestSeller struct {
	Book      Book  `json:"book"`
	TotalSold int64 `json:"total_sold"`
}
