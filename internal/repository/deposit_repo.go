// internal/repository/deposit_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// DepositRepository defines the interface for deposit request storage.
type DepositRepository interface {
	// CreateDeposit inserts a deposit; a reused transaction id yields util.ErrDuplicateTransaction.
	CreateDeposit(ctx context.Context, q DBExecutor, deposit *domain.Deposit) error
	// GetDepositByIDForUpdate retrieves a deposit and locks its row.
	GetDepositByIDForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Deposit, error)
	// ExistsByTransactionID reports whether a deposit already uses the reference.
	ExistsByTransactionID(ctx context.Context, q DBExecutor, transactionID string) (bool, error)
	// ListDeposits returns all deposits, newest first, with their method names.
	ListDeposits(ctx context.Context, q DBExecutor) ([]domain.DepositView, error)
	// UpdateDepositStatus moves a pending deposit to status; a non-pending
	// deposit yields util.ErrAlreadyProcessed.
	UpdateDepositStatus(ctx context.Context, q DBExecutor, id int64, status domain.TransactionStatus) error
}
