// internal/repository/postgres/deposit_pg.go
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

// DepositRepository implements repository.DepositRepository for PostgreSQL.
type DepositRepository struct{}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository() repository.DepositRepository {
	return &DepositRepository{}
}

const depositColumns = `id, user_id, method_id, username, phone, transaction_id, country, amount, currency, status, created_at`

// CreateDeposit inserts a new deposit and fills its ID.
func (r *DepositRepository) CreateDeposit(ctx context.Context, q repository.DBExecutor, deposit *domain.Deposit) error {
	query := `INSERT INTO deposits (user_id, method_id, username, phone, transaction_id, country, amount, currency, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.GetContext(ctx, &deposit.ID, query,
		deposit.UserID,
		deposit.MethodID,
		deposit.Username,
		deposit.Phone,
		deposit.TransactionID,
		deposit.Country,
		deposit.Amount,
		deposit.Currency,
		deposit.Status,
		deposit.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

// GetDepositByIDForUpdate retrieves a deposit and locks its row so that two
// operators cannot finalize it concurrently.
func (r *DepositRepository) GetDepositByIDForUpdate(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Deposit, error) {
	return r.getDeposit(ctx, q, `SELECT `+depositColumns+` FROM deposits WHERE id = $1 FOR UPDATE`, id)
}

func (r *DepositRepository) getDeposit(ctx context.Context, q repository.DBExecutor, query string, id int64) (*domain.Deposit, error) {
	var deposit domain.Deposit
	if err := q.GetContext(ctx, &deposit, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deposit %d: %w", id, err)
	}
	return &deposit, nil
}

// ExistsByTransactionID reports whether a deposit already carries transactionID.
func (r *DepositRepository) ExistsByTransactionID(ctx context.Context, q repository.DBExecutor, transactionID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM deposits WHERE transaction_id = $1)`
	if err := q.GetContext(ctx, &exists, query, transactionID); err != nil {
		return false, fmt.Errorf("failed to check deposit transaction id: %w", err)
	}
	return exists, nil
}

// ListDeposits returns every deposit, newest first, joined with the method name.
func (r *DepositRepository) ListDeposits(ctx context.Context, q repository.DBExecutor) ([]domain.DepositView, error) {
	deposits := []domain.DepositView{}
	query := `
		SELECT d.id, d.user_id, d.method_id, d.username, d.phone, d.transaction_id, d.country,
		       d.amount, d.currency, d.status, d.created_at, m.name AS method_name
		FROM deposits d
		LEFT JOIN transaction_methods m ON m.id = d.method_id
		ORDER BY d.created_at DESC, d.id DESC`
	if err := q.SelectContext(ctx, &deposits, query); err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// UpdateDepositStatus finalizes a pending deposit. The status guard in the
// WHERE clause keeps the transition single-shot even without a prior lock.
func (r *DepositRepository) UpdateDepositStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	query := `UPDATE deposits SET status = $1 WHERE id = $2 AND status = $3`
	result, err := q.ExecContext(ctx, query, status, id, domain.TransactionStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update deposit %d status: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating deposit %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrAlreadyProcessed
	}
	return nil
}
