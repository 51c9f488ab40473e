// internal/domain/user.go
package domain

import "time"

// User is the subset of the registered user profile the ledger reads.
// Users are created by the registration flow, never by this service.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Phone     *string   `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
