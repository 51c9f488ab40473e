// internal/api/handler/request.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"wallet-ledger/internal/api/types"
	"wallet-ledger/internal/service"
)

// RequestHandler handles deposit and withdrawal requests and their validation.
type RequestHandler struct {
	responder
	requests    service.RequestService
	validations service.ValidationService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests service.RequestService, validations service.ValidationService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		responder:   responder{logger: logger},
		requests:    requests,
		validations: validations,
	}
}

// DepositRequest represents the request body for a deposit declaration.
type DepositRequest struct {
	UserID        int64           `json:"user_id"`
	Username      string          `json:"username"`
	Phone         *string         `json:"phone"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	MethodID      int64           `json:"method_id"`
	Currency      string          `json:"currency"`
	Country       *string         `json:"country"`
}

// WithdrawalRequest represents the request body for a withdrawal.
type WithdrawalRequest struct {
	UserID   int64           `json:"user_id"`
	MethodID int64           `json:"method_id"`
	Address  string          `json:"address"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateDeposit records a pending deposit.
// POST /deposits
func (h *RequestHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	deposit, err := h.requests.CreateDeposit(r.Context(), service.CreateDepositInput{
		UserID:        req.UserID,
		Username:      req.Username,
		Phone:         req.Phone,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		MethodID:      req.MethodID,
		Currency:      req.Currency,
		Country:       req.Country,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, deposit)
}

// ListDeposits returns every deposit, newest first.
// GET /deposits
func (h *RequestHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.requests.ListDeposits(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, deposits)
}

// ValidateDeposit approves a deposit and credits the wallet.
// POST /deposits/{id}/validate
func (h *RequestHandler) ValidateDeposit(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.validations.ValidateDeposit, "Deposit validated, wallet credited and history updated")
}

// RejectDeposit rejects a deposit.
// POST /deposits/{id}/reject
func (h *RequestHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.validations.RejectDeposit, "Deposit rejected and history updated")
}

// CreateWithdrawal records a pending withdrawal.
// POST /withdrawals
func (h *RequestHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req WithdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	withdrawal, err := h.requests.CreateWithdrawal(r.Context(), service.CreateWithdrawalInput{
		UserID:   req.UserID,
		MethodID: req.MethodID,
		Address:  req.Address,
		Amount:   req.Amount,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusCreated, withdrawal)
}

// ListWithdrawals returns every withdrawal, newest first.
// GET /withdrawals
func (h *RequestHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.requests.ListWithdrawals(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, withdrawals)
}

// ValidateWithdrawal approves a withdrawal and debits the wallet.
// POST /withdrawals/{id}/validate
func (h *RequestHandler) ValidateWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.validations.ValidateWithdrawal, "Withdrawal validated, wallet debited and history updated")
}

// RejectWithdrawal rejects a withdrawal.
// POST /withdrawals/{id}/reject
func (h *RequestHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.validations.RejectWithdrawal, "Withdrawal rejected and history updated")
}

type finalizeFunc func(ctx context.Context, id int64) (*service.ValidationResult, error)

func (h *RequestHandler) finalize(w http.ResponseWriter, r *http.Request, fn finalizeFunc, message string) {
	id, err := idParam(r, "id")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.ValidationResponse{Message: message, ValidationResult: *result})
}
