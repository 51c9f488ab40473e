// internal/repository/postgres/user_pg.go
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

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
// Methods receive their DBExecutor so they can run inside a caller's transaction.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, username, phone, created_at FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// PackRepository implements repository.PackRepository for PostgreSQL.
type PackRepository struct{}

// NewPackRepository creates a new PackRepository.
func NewPackRepository() repository.PackRepository {
	return &PackRepository{}
}

// HasActivePack reports whether the user owns at least one pack.
func (r *PackRepository) HasActivePack(ctx context.Context, q repository.DBExecutor, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_packs WHERE user_id = $1)`
	if err := q.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("failed to check packs for user %d: %w", userID, err)
	}
	return exists, nil
}
