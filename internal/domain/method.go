// internal/domain/method.go
package domain

import "time"

// MethodType tells whether a payment method accepts deposits or withdrawals.
type MethodType string

const (
	MethodTypeDeposit    MethodType = "deposit"
	MethodTypeWithdrawal MethodType = "withdrawal"
)

// Valid reports whether t is a known method type.
func (t MethodType) Valid() bool {
	return t == MethodTypeDeposit || t == MethodTypeWithdrawal
}

// TransactionMethod is a payment channel (mobile money operator, crypto network).
type TransactionMethod struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Type          MethodType `db:"type" json:"type"`
	Country       *string    `db:"country" json:"country"`
	IconURL       *string    `db:"icon_url" json:"icon_url"`
	FlagURL       *string    `db:"flag_url" json:"flag_url"`
	AccountNumber *string    `db:"account_number" json:"account_number"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// WithdrawMethod is the public projection of a withdrawal method.
type WithdrawMethod struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	IconURL *string `db:"icon_url" json:"icon_url"`
	Country *string `db:"country" json:"country"`
}
