// internal/api/handler/validator.go
package handler

import (
	"log/slog"
	"net/http"

	"wallet-ledger/internal/api/types"
	"wallet-ledger/internal/service"
)

// ValidatorHandler exposes the operator's two-step login.
type ValidatorHandler struct {
	responder
	auth service.ValidatorAuth
}

// NewValidatorHandler creates a new ValidatorHandler.
func NewValidatorHandler(auth service.ValidatorAuth, logger *slog.Logger) *ValidatorHandler {
	return &ValidatorHandler{responder: responder{logger: logger}, auth: auth}
}

// LoginRequest is the first login step.
type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	TelegramUsername string `json:"telegram_username"`
}

// VerifyOTPRequest is the second login step.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Login checks the operator's credentials.
// POST /validator/login
func (h *ValidatorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.auth.Login(req.Email, req.Password, req.TelegramUsername); err != nil {
		h.logger.Warn("Validator login refused", "email", req.Email)
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "Valid credentials. Please enter your authenticator code."})
}

// VerifyOTP checks the operator's TOTP code.
// POST /validator/verify-otp
func (h *ValidatorHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.auth.VerifyOTP(req.Email, req.Code); err != nil {
		h.logger.Warn("Validator OTP refused", "email", req.Email)
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.MessageResponse{Message: "Login confirmed"})
}
