// internal/repository/withdrawal_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// WithdrawalRepository defines the interface for withdrawal request storage.
type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, q DBExecutor, withdrawal *domain.Withdrawal) error
	GetWithdrawalByIDForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, q DBExecutor) ([]domain.WithdrawalView, error)
	UpdateWithdrawalStatus(ctx context.Context, q DBExecutor, id int64, status domain.TransactionStatus) error
}
