// internal/service/ledger.go
package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// Ledger owns per-user balances. Credit and Debit take the caller's executor
// so that the balance change commits or rolls back with the caller's transaction.
type Ledger interface {
	Credit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// walletLedger implements Ledger on top of a WalletRepository.
type walletLedger struct {
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	walletRepo repository.WalletRepository
}

// NewLedger creates a Ledger.
func NewLedger(dbExecutor repository.DBExecutor, walletRepo repository.WalletRepository) Ledger {
	return &walletLedger{
		dbExecutor: dbExecutor,
		walletRepo: walletRepo,
	}
}

// Credit adds amount to the user's balance, creating the wallet on first use.
func (l *walletLedger) Credit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, util.ErrInvalidInput
	}
	balance, err := l.walletRepo.CreditWallet(ctx, q, userID, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit: %w", err)
	}
	return balance, nil
}

// Debit locks the user's wallet, checks the balance and subtracts amount.
// A missing wallet counts as an empty one.
func (l *walletLedger) Debit(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, util.ErrInvalidInput
	}

	wallet, err := l.walletRepo.GetWalletByUserIDForUpdate(ctx, q, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return decimal.Zero, util.ErrInsufficientFunds
		}
		return decimal.Zero, fmt.Errorf("debit: failed to lock wallet of user %d: %w", userID, err)
	}
	if wallet.Amount.LessThan(amount) {
		return decimal.Zero, util.ErrInsufficientFunds
	}

	balance, err := l.walletRepo.DebitWallet(ctx, q, wallet.ID, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("debit: %w", err)
	}
	return balance, nil
}

// GetBalance returns the user's balance, zero when the user has no wallet yet.
func (l *walletLedger) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	wallet, err := l.walletRepo.GetWalletByUserID(ctx, l.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return wallet.Amount, nil
}
