// internal/repository/postgres/history_pg.go
package postgres

import (
	"context"
	"fmt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
)

// HistoryRepository implements repository.HistoryRepository for PostgreSQL.
type HistoryRepository struct{}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository() repository.HistoryRepository {
	return &HistoryRepository{}
}

// CreateHistory appends a history record using the provided DBExecutor.
func (r *HistoryRepository) CreateHistory(ctx context.Context, q repository.DBExecutor, entry *domain.TransactionHistory) error {
	query := `INSERT INTO transaction_history (user_id, method_id, username, phone, transaction_id, country, amount, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.GetContext(ctx, &entry.ID, query,
		entry.UserID,
		entry.MethodID,
		entry.Username,
		entry.Phone,
		entry.TransactionID,
		entry.Country,
		entry.Amount,
		entry.Status,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// ListHistoryByUserID returns a user's finalized transactions, newest first.
func (r *HistoryRepository) ListHistoryByUserID(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.HistoryView, error) {
	entries := []domain.HistoryView{}
	query := `
		SELECT h.id, h.user_id, h.method_id, h.username, h.phone, h.transaction_id, h.country,
		       h.amount, h.status, h.created_at, m.name AS method_name
		FROM transaction_history h
		LEFT JOIN transaction_methods m ON m.id = h.method_id
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC, h.id DESC`
	if err := q.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list history for user %d: %w", userID, err)
	}
	return entries, nil
}
