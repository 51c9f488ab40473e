// internal/service/history_service.go
package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
)

// HistoryEntry is one finalized transaction as shown to the user.
type HistoryEntry struct {
	ID            int64                    `json:"id"`
	TransactionID string                   `json:"transaction_id"`
	MethodName    string                   `json:"method_name"`
	Amount        float64                  `json:"amount"`
	Status        domain.TransactionStatus `json:"status"`
	Date          string                   `json:"date"`
}

// HistoryService reads the append-only transaction history.
type HistoryService interface {
	ListUserHistory(ctx context.Context, userID int64, locale string) ([]HistoryEntry, error)
}

type historyService struct {
	dbExecutor  repository.DBExecutor
	historyRepo repository.HistoryRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(dbExecutor repository.DBExecutor, historyRepo repository.HistoryRepository) HistoryService {
	return &historyService{dbExecutor: dbExecutor, historyRepo: historyRepo}
}

// ListUserHistory returns the user's finalized deposits and withdrawals, newest
// first, with dates rendered in locale.
func (s *historyService) ListUserHistory(ctx context.Context, userID int64, locale string) ([]HistoryEntry, error) {
	if userID <= 0 {
		return nil, util.ErrInvalidInput
	}
	rows, err := s.historyRepo.ListHistoryByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list history for user %d: %w", userID, err)
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		name := util.UnknownMethodLabel(locale)
		if row.MethodName != nil {
			name = *row.MethodName
		}
		entries = append(entries, HistoryEntry{
			ID:            row.ID,
			TransactionID: row.TransactionID,
			MethodName:    name,
			Amount:        row.Amount.InexactFloat64(),
			Status:        row.Status,
			Date:          util.FormatDate(row.CreatedAt, locale),
		})
	}
	return entries, nil
}
