// internal/repository/user_repo.go
package repository

import (
	"context"

	"wallet-ledger/internal/domain"
)

// UserRepository defines read access to registered users.
type UserRepository interface {
	// GetUserByID retrieves a user by their ID using the provided DBExecutor.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
}

// PackRepository answers the "user has an active pack" business check.
type PackRepository interface {
	// HasActivePack reports whether at least one pack is attached to the user.
	HasActivePack(ctx context.Context, q DBExecutor, userID int64) (bool, error)
}
