// internal/api/handler/wallet.go
package handler

import (
	"log/slog"
	"net/http"

	"wallet-ledger/internal/api/types"
	"wallet-ledger/internal/service"
)

// WalletHandler handles HTTP requests related to wallet balances.
type WalletHandler struct {
	responder
	ledger service.Ledger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger service.Ledger, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{responder: responder{logger: logger}, ledger: ledger}
}

// GetBalance returns a user's balance. Users without a wallet have zero.
// GET /wallets/{user_id}
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.BalanceResponse{UserID: userID, Balance: balance})
}
