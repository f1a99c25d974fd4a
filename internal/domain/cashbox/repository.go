// Package cashbox defines persistence for the store's single cash balance,
// kept in the settings table under a reserved key.
package cashbox

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceKey is the reserved settings key holding the cash balance
const BalanceKey = "Caja"

// ErrBalanceNotFound indicates the balance key has never been persisted
var ErrBalanceNotFound = errors.New("cash balance not found in settings")

// Repository manages the persisted cash balance
type Repository interface {
	// Get reads the persisted balance, returning ErrBalanceNotFound if the
	// key has never been written
	Get(ctx context.Context) (decimal.Decimal, error)

	// Init creates the balance row with the given seed value
	Init(ctx context.Context, value decimal.Decimal) error

	// Set overwrites the persisted balance
	Set(ctx context.Context, value decimal.Decimal) error

	WithTx(tx pgx.Tx) Repository
}
