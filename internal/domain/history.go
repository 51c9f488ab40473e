// internal/domain/history.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionHistory is the append-only audit record of a finalized request.
type TransactionHistory struct {
	ID            int64             `db:"id" json:"id"`
	UserID        int64             `db:"user_id" json:"user_id"`
	MethodID      *int64            `db:"method_id" json:"method_id"`
	Username      *string           `db:"username" json:"username"`
	Phone         *string           `db:"phone" json:"phone"`
	TransactionID string            `db:"transaction_id" json:"transaction_id"`
	Country       *string           `db:"country" json:"country"`
	Amount        decimal.Decimal   `db:"amount" json:"amount"`
	Status        TransactionStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// HistoryFromDeposit builds the history record for a finalized deposit.
func HistoryFromDeposit(d *Deposit, status TransactionStatus) *TransactionHistory {
	username := d.Username
	return &TransactionHistory{
		UserID:        d.UserID,
		MethodID:      d.MethodID,
		Username:      &username,
		Phone:         d.Phone,
		TransactionID: d.TransactionID,
		Country:       d.Country,
		Amount:        d.Amount,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
}

// HistoryFromWithdrawal builds the history record for a finalized withdrawal.
// Username and phone are taken from the owning user.
func HistoryFromWithdrawal(w *Withdrawal, user *User, status TransactionStatus) *TransactionHistory {
	username := user.Username
	return &TransactionHistory{
		UserID:        w.UserID,
		MethodID:      w.MethodID,
		Username:      &username,
		Phone:         user.Phone,
		TransactionID: w.Reference(),
		Amount:        w.Amount,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
}

// HistoryView is a history record joined with its method's display name.
type HistoryView struct {
	TransactionHistory
	MethodName *string `db:"method_name" json:"method_name"`
}
