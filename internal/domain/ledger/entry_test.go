package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("valid sale", func(t *testing.T) {
		entry, err := NewEntry("111", KindSale, 2, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "111", entry.BookISBN)
		assert.Equal(t, KindSale, entry.Kind)
		assert.Equal(t, 2, entry.Quantity)
		assert.False(t, entry.OccurredAt.IsZero(), "zero time should default to now")
	})

	t.Run("explicit timestamp is kept", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		entry, err := NewEntry("111", KindRestock, 5, at)
		require.NoError(t, err)
		assert.Equal(t, at, entry.OccurredAt)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := NewEntry("111", Kind("refund"), 1, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := NewEntry("111", KindSale, 0, time.Time{})
		assert.Error(t, err)

		_, err = NewEntry("111", KindSale, -3, time.Time{})
		assert.Error(t, err)
	})
}
