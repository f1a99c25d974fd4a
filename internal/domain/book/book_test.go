package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	purchase := decimal.RequireFromString("100.00")
	sale := decimal.RequireFromString("200.00")

	t.Run("valid", func(t *testing.T) {
		b, err := NewBook("111", "Book A", purchase, sale, 5)
		require.NoError(t, err)
		assert.Equal(t, "111", b.ISBN)
		assert.Equal(t, "Book A", b.Title)
		assert.True(t, b.PurchasePrice.Equal(purchase))
		assert.True(t, b.SalePrice.Equal(sale))
		assert.Equal(t, 5, b.Quantity)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("empty isbn", func(t *testing.T) {
		_, err := NewBook("", "Book A", purchase, sale, 0)
		assert.ErrorIs(t, err, ErrEmptyISBN)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewBook("111", "", purchase, sale, 0)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewBook("111", "Book A", decimal.RequireFromString("-1"), sale, 0)
		assert.ErrorIs(t, err, ErrNegativePrice)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := NewBook("111", "Book A", purchase, sale, -1)
		assert.ErrorIs(t, err, ErrNegativeQuantity)
	})
}

func TestBook_Costs(t *testing.T) {
	b, err := NewBook("111", "Book A", decimal.RequireFromString("100.00"), decimal.RequireFromString("200.00"), 5)
	require.NoError(t, err)

	assert.True(t, b.RestockCost(5).Equal(decimal.RequireFromString("500.00")))
	assert.True(t, b.SaleIncome(2).Equal(decimal.RequireFromString("400.00")))
}

func TestBook_HasStock(t *testing.T) {
	b, err := NewBook("111", "Book A", decimal.Zero, decimal.Zero, 5)
	require.NoError(t, err)

	assert.True(t, b.HasStock(5))
	assert.False(t, b.HasStock(6))
}

func TestErrBookNotFound_Is(t *testing.T) {
	err := ErrBookNotFound{ISBN: "111"}

	assert.ErrorIs(t, err, ErrBookNotFound{})
	assert.ErrorIs(t, err, ErrBookNotFound{ISBN: "111"})
	assert.NotErrorIs(t, err, ErrBookNotFound{ISBN: "222"})
	assert.NotErrorIs(t, err, ErrDuplicateISBN{ISBN: "111"})
}

func TestErrDuplicateISBN_Is(t *testing.T) {
	err := ErrDuplicateISBN{ISBN: "111"}

	assert.ErrorIs(t, err, ErrDuplicateISBN{})
	assert.ErrorIs(t, err, ErrDuplicateISBN{ISBN: "111"})
	assert.NotErrorIs(t, err, ErrDuplicateISBN{ISBN: "222"})
}
