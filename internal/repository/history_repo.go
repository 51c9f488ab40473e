// internal/repository/history_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// HistoryRepository is the append-only store of finalized transactions.
// Entries are never updated or deleted.
type HistoryRepository interface {
	CreateHistory(ctx context.Context, q DBExecutor, entry *domain.TransactionHistory) error
	ListHistoryByUserID(ctx context.Context, q DBExecutor, userID int64) ([]domain.HistoryView, error)
}
