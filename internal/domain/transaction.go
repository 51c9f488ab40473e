// internal/domain/transaction.go
package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionStatus is the lifecycle state of a deposit or withdrawal request.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// IsFinal reports whether the status is terminal.
func (s TransactionStatus) IsFinal() bool {
	return s == TransactionStatusApproved || s == TransactionStatusRejected
}

// MaxAmount is the exclusive upper bound of a request amount: ten digits,
// two of them after the decimal point.
var MaxAmount = decimal.New(1, 8)

// ValidAmount reports whether d is positive, below MaxAmount and has at most
// two decimal places, which is what the NUMERIC(12,2) columns store exactly.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(MaxAmount) && d.Equal(d.Round(2))
}

// DefaultCurrency is used when a deposit does not name one.
const DefaultCurrency = "FCFA"

// WithdrawalReferencePrefix prefixes the synthetic history reference of a withdrawal.
const WithdrawalReferencePrefix = "WDR-"

// Deposit is a user's request to be credited after an off-platform payment.
type Deposit struct {
	ID            int64             `db:"id" json:"id"`
	UserID        int64             `db:"user_id" json:"user_id"`
	MethodID      *int64            `db:"method_id" json:"method_id"` // Nullable: method may be removed later
	Username      string            `db:"username" json:"username"`
	Phone         *string           `db:"phone" json:"phone"`
	TransactionID string            `db:"transaction_id" json:"transaction_id"` // Unique payment reference supplied by the user
	Country       *string           `db:"country" json:"country"`
	Amount        decimal.Decimal   `db:"amount" json:"amount"`
	Currency      string            `db:"currency" json:"currency"`
	Status        TransactionStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// NewDeposit creates a pending deposit.
func NewDeposit(userID, methodID int64, username string, phone *string, transactionID string, country *string, amount decimal.Decimal, currency string) *Deposit {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Deposit{
		UserID:        userID,
		MethodID:      &methodID,
		Username:      username,
		Phone:         phone,
		TransactionID: transactionID,
		Country:       country,
		Amount:        amount,
		Currency:      currency,
		Status:        TransactionStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// DepositView is a deposit joined with its method's display name.
type DepositView struct {
	Deposit
	MethodName *string `db:"method_name" json:"method_name"`
}

// Withdrawal is a user's request to receive points off-platform.
type Withdrawal struct {
	ID        int64             `db:"id" json:"id"`
	UserID    int64             `db:"user_id" json:"user_id"`
	MethodID  *int64            `db:"method_id" json:"method_id"`
	Address   string            `db:"address" json:"address"` // Opaque destination: mobile number, bank account or crypto address
	Amount    decimal.Decimal   `db:"amount" json:"amount"`
	Status    TransactionStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// NewWithdrawal creates a pending withdrawal.
func NewWithdrawal(userID, methodID int64, address string, amount decimal.Decimal) *Withdrawal {
	return &Withdrawal{
		UserID:    userID,
		MethodID:  &methodID,
		Address:   address,
		Amount:    amount,
		Status:    TransactionStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Reference is the stable history reference of the withdrawal.
func (w *Withdrawal) Reference() string {
	return WithdrawalReferencePrefix + strconv.FormatInt(w.ID, 10)
}

// WithdrawalView is a withdrawal joined with its method's display name.
type WithdrawalView struct {
	Withdrawal
	MethodName *string `db:"method_name" json:"method_name"`
}
