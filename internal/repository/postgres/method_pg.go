// internal/repository/postgres/method_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wallet-ledger/internal/domain"
	"wallet-ledger/internal/repository"
	"wallet-ledger/internal/util"

	"github.com/lib/pq"
)

// MethodRepository implements repository.MethodRepository for PostgreSQL.
type MethodRepository struct{}

// NewMethodRepository creates a new MethodRepository.
func NewMethodRepository() repository.MethodRepository {
	return &MethodRepository{}
}

const methodColumns = `id, name, type, country, icon_url, flag_url, account_number, created_at`

// ListMethods returns the catalog ordered by ID, optionally filtered by type.
func (r *MethodRepository) ListMethods(ctx context.Context, q repository.DBExecutor, methodType domain.MethodType) ([]domain.TransactionMethod, error) {
	methods := []domain.TransactionMethod{}
	var err error
	if methodType == "" {
		err = q.SelectContext(ctx, &methods, `SELECT `+methodColumns+` FROM transaction_methods ORDER BY id`)
	} else {
		err = q.SelectContext(ctx, &methods, `SELECT `+methodColumns+` FROM transaction_methods WHERE type = $1 ORDER BY id`, methodType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction methods: %w", err)
	}
	return methods, nil
}

// ListWithdrawMethods returns {id, name, icon_url, country} for every withdrawal method.
func (r *MethodRepository) ListWithdrawMethods(ctx context.Context, q repository.DBExecutor) ([]domain.WithdrawMethod, error) {
	methods := []domain.WithdrawMethod{}
	query := `SELECT id, name, icon_url, country FROM transaction_methods WHERE type = $1 ORDER BY id`
	if err := q.SelectContext(ctx, &methods, query, domain.MethodTypeWithdrawal); err != nil {
		return nil, fmt.Errorf("failed to list withdraw methods: %w", err)
	}
	return methods, nil
}

// GetMethodByID retrieves a method by its ID.
func (r *MethodRepository) GetMethodByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.TransactionMethod, error) {
	var method domain.TransactionMethod
	err := q.GetContext(ctx, &method, `SELECT `+methodColumns+` FROM transaction_methods WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction method %d: %w", id, err)
	}
	return &method, nil
}

// UpsertMethod inserts a method keyed by its unique name, refreshing the
// descriptive columns when the name already exists. The row keeps its ID.
func (r *MethodRepository) UpsertMethod(ctx context.Context, q repository.DBExecutor, method *domain.TransactionMethod) error {
	query := `INSERT INTO transaction_methods (name, type, country, icon_url, flag_url, account_number)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (name) DO UPDATE
              SET type = EXCLUDED.type, country = EXCLUDED.country, icon_url = EXCLUDED.icon_url,
                  flag_url = EXCLUDED.flag_url, account_number = EXCLUDED.account_number
              RETURNING id, created_at`
	var row struct {
		ID        int64     `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := q.GetContext(ctx, &row, query,
		method.Name,
		method.Type,
		method.Country,
		method.IconURL,
		method.FlagURL,
		method.AccountNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction method %q: %w", method.Name, err)
	}
	method.ID = row.ID
	method.CreatedAt = row.CreatedAt
	return nil
}

// DeleteWithdrawalMethodsExcept deletes withdrawal methods not named in keep.
// Deposits, withdrawals and history keep their rows; their method_id becomes NULL.
func (r *MethodRepository) DeleteWithdrawalMethodsExcept(ctx context.Context, q repository.DBExecutor, keep []string) (int64, error) {
	query := `DELETE FROM transaction_methods WHERE type = $1 AND NOT (name = ANY($2))`
	result, err := q.ExecContext(ctx, query, domain.MethodTypeWithdrawal, pq.Array(keep))
	if err != nil {
		return 0, fmt.Errorf("failed to prune withdrawal methods: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected after pruning withdrawal methods: %w", err)
	}
	return n, nil
}
