// internal/domain/transaction_test.go
package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"0.01", true},
		{"10.50", true},
		{"99999999.99", true},
		{"0", false},
		{"-1", false},
		{"0.001", false},
		{"10.005", false},
		{"100000000", false},
		{"10000000000", false},
	}
	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidAmount(decimal.RequireFromString(tc.amount)))
		})
	}
}

func TestTransactionStatus_IsFinal(t *testing.T) {
	assert.False(t, TransactionStatusPending.IsFinal())
	assert.True(t, TransactionStatusApproved.IsFinal())
	assert.True(t, TransactionStatusRejected.IsFinal())
}
