// internal/api/types/response.go
package types

import (
	"github.com/shopspring/decimal"

	"wallet-ledger/internal/service"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse is returned when a request is approved or rejected.
type ValidationResponse struct {
	Message string `json:"message"`
	service.ValidationResult
}

// BalanceResponse is a user's current wallet balance.
type BalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
