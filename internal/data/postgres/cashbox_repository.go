package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookstore-ledger/internal/domain/cashbox"
	"github.com/bookstore-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CashboxRepository implements the cashbox.Repository interface on top of the
// store_settings table.
type CashboxRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCashboxRepository creates a new PostgreSQL cashbox repository backed by the pool
func NewCashboxRepository(logger *slog.Logger, db *persistence.PostgresDB) cashbox.Repository {
	return &CashboxRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx rebinds the repository to an open transaction
func (r *CashboxRepository) WithTx(tx pgx.Tx) cashbox.Repository {
	return &CashboxRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Get reads the persisted balance
func (r *CashboxRepository) Get(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT value FROM store_settings WHERE key = $1`

	var value decimal.Decimal
	err := r.querier.QueryRow(ctx, query, cashbox.BalanceKey).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, cashbox.ErrBalanceNotFound
		}
		r.logger.Error("Failed to read cash balance", "error", err)
		return decimal.Zero, fmt.Errorf("failed to read cash balance: %w", err)
	}

	return value, nil
}

// Init creates the balance row with the given seed value
func (r *CashboxRepository) Init(ctx context.Context, value decimal.Decimal) error {
	query := `INSERT INTO store_settings (key, value) VALUES ($1, $2)`

	_, err := r.querier.Exec(ctx, query, cashbox.BalanceKey, value)
	if err != nil {
		r.logger.Error("Failed to initialize cash balance", "error", err)
		return fmt.Errorf("failed to initialize cash balance: %w", err)
	}

	return nil
}

// Set overwrites the persisted balance. The row must already exist.
func (r *CashboxRepository) Set(ctx context.Context, value decimal.Decimal) error {
	query := `UPDATE store_settings SET value = $1 WHERE key = $2`

	result, err := r.querier.Exec(ctx, query, value, cashbox.BalanceKey)
	if err != nil {
		r.logger.Error("Failed to update cash balance", "error", err)
		return fmt.Errorf("failed to update cash balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return cashbox.ErrBalanceNotFound
	}

	return nil
}
