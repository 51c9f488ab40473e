// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet holds a user's point balance. There is at most one wallet per user.
type Wallet struct {
	ID          int64           `db:"id" json:"id"`                     // Primary key, BIGSERIAL in DB
	UserID      int64           `db:"user_id" json:"user_id"`           // Unique foreign key to User
	Amount      decimal.Decimal `db:"amount" json:"amount"`             // Current balance, NUMERIC(12, 2) in DB, never negative
	LastUpdated time.Time       `db:"last_updated" json:"last_updated"` // Timestamp of last mutation
}
