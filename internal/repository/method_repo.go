// internal/repository/method_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// MethodRepository defines access to the transaction method catalog.
type MethodRepository interface {
	// ListMethods returns every method, or only those of methodType when it is non-empty.
	ListMethods(ctx context.Context, q DBExecutor, methodType domain.MethodType) ([]domain.TransactionMethod, error)
	// ListWithdrawMethods returns the public projection of withdrawal methods.
	ListWithdrawMethods(ctx context.Context, q DBExecutor) ([]domain.WithdrawMethod, error)
	// GetMethodByID retrieves a method by ID.
	GetMethodByID(ctx context.Context, q DBExecutor, id int64) (*domain.TransactionMethod, error)
	// UpsertMethod inserts the method or updates the existing row with the same name.
	UpsertMethod(ctx context.Context, q DBExecutor, method *domain.TransactionMethod) error
	// DeleteWithdrawalMethodsExcept removes withdrawal methods whose name is not in keep.
	DeleteWithdrawalMethodsExcept(ctx context.Context, q DBExecutor, keep []string) (int64, error)
}
