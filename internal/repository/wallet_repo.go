// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// GetWalletByUserID retrieves a user's wallet without locking it.
	GetWalletByUserID(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// GetWalletByUserIDForUpdate retrieves a user's wallet and locks the row until
	// the surrounding transaction ends.
	GetWalletByUserIDForUpdate(ctx context.Context, q DBExecutor, userID int64) (*domain.Wallet, error)
	// CreditWallet adds amount to the user's wallet, creating it when absent,
	// and returns the new balance.
	CreditWallet(ctx context.Context, q DBExecutor, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	// DebitWallet subtracts amount from the wallet and returns the new balance.
	DebitWallet(ctx context.Context, q DBExecutor, walletID int64, amount decimal.Decimal) (decimal.Decimal, error)
}
