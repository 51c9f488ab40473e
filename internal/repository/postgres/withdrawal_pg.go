// internal/repository/postgres/withdrawal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"
)

// WithdrawalRepository implements repository.WithdrawalRepository for PostgreSQL.
type WithdrawalRepository struct{}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository() repository.WithdrawalRepository {
	return &WithdrawalRepository{}
}

const withdrawalColumns = `id, user_id, method_id, address, amount, status, created_at`

// CreateWithdrawal inserts a new withdrawal and fills its ID.
func (r *WithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, withdrawal *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (user_id, method_id, address, amount, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.GetContext(ctx, &withdrawal.ID, query,
		withdrawal.UserID,
		withdrawal.MethodID,
		withdrawal.Address,
		withdrawal.Amount,
		withdrawal.Status,
		withdrawal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// GetWithdrawalByIDForUpdate retrieves a withdrawal and locks its row.
func (r *WithdrawalRepository) GetWithdrawalByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Withdrawal, error) {
	return r.getWithdrawal(ctx, q, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
}

func (r *WithdrawalRepository) getWithdrawal(ctx context.Context, q repository.DBExecutor, query string, id int64) (*domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	if err := q.GetContext(ctx, &withdrawal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal %d: %w", id, err)
	}
	return &withdrawal, nil
}

// ListWithdrawals returns every withdrawal, newest first, joined with the method name.
func (r *WithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawalView, error) {
	withdrawals := []domain.WithdrawalView{}
	query := `
		SELECT w.id, w.user_id, w.method_id, w.address, w.amount, w.status, w.created_at,
		       m.name AS method_name
		FROM withdrawals w
		LEFT JOIN transaction_methods m ON m.id = w.method_id
		ORDER BY w.created_at DESC, w.id DESC`
	if err := q.SelectContext(ctx, &withdrawals, query); err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}

// UpdateWithdrawalStatus finalizes a pending withdrawal.
func (r *WithdrawalRepository) UpdateWithdrawalStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	query := `UPDATE withdrawals SET status = $1 WHERE id = $2 AND status = $3`
	result, err := q.ExecContext(ctx, query, status, id, domain.TransactionStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal %d status: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating withdrawal %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrAlreadyProcessed
	}
	return nil
}
