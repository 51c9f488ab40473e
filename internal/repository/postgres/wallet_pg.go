// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

// GetWalletByUserID retrieves a wallet by user ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByUserID(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	return r.getWallet(ctx, q, `SELECT id, user_id, amount, last_updated FROM wallet WHERE user_id = $1`, userID)
}

// GetWalletByUserIDForUpdate retrieves a wallet by user ID and takes a row lock
// that is held until the surrounding transaction commits or rolls back.
func (r *WalletRepository) GetWalletByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Wallet, error) {
	return r.getWallet(ctx, q, `SELECT id, user_id, amount, last_updated FROM wallet WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *WalletRepository) getWallet(ctx context.Context, q repository.DBExecutor, query string, userID int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return &wallet, nil
}

// CreditWallet adds amount to the user's wallet in one statement, creating the
// wallet on first credit. Concurrent credits are serialized by the unique user_id.
func (r *WalletRepository) CreditWallet(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `INSERT INTO wallet (user_id, amount, last_updated)
              VALUES ($1, $2, NOW())
              ON CONFLICT (user_id) DO UPDATE
              SET amount = wallet.amount + EXCLUDED.amount, last_updated = NOW()
              RETURNING amount`
	var balance decimal.Decimal
	if err := q.GetContext(ctx, &balance, query, userID, amount); err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit wallet for user %d: %w", userID, err)
	}
	return balance, nil
}

// DebitWallet subtracts amount from the wallet and returns the new balance.
// Callers must hold the row lock and have checked the balance; the schema's
// CHECK (amount >= 0) rejects anything that slips through.
func (r *WalletRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, walletID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `UPDATE wallet SET amount = amount - $1, last_updated = NOW() WHERE id = $2 RETURNING amount`
	var balance decimal.Decimal
	if err := q.GetContext(ctx, &balance, query, amount, walletID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, util.ErrNotFound
		}
		if isCheckViolation(err) {
			return decimal.Zero, util.ErrInsufficientFunds
		}
		return decimal.Zero, fmt.Errorf("failed to debit wallet %d: %w", walletID, err)
	}
	return balance, nil
}
