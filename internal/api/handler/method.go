// internal/api/handler/method.go
package handler

import (
	"log/slog"
	"net/http"

	"wallet-ledger/internal/service"
)

// MethodHandler serves the transaction method catalog.
type MethodHandler struct {
	responder
	service service.MethodService
}

// NewMethodHandler creates a new MethodHandler.
func NewMethodHandler(svc service.MethodService, logger *slog.Logger) *MethodHandler {
	return &MethodHandler{responder: responder{logger: logger}, service: svc}
}

// ListMethods returns all methods, optionally filtered by ?type=deposit|withdrawal.
// GET /transaction-methods
func (h *MethodHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListMethods(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, methods)
}

// GetMethod returns one method.
// GET /transaction-methods/{id}
func (h *MethodHandler) GetMethod(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	method, err := h.service.GetMethod(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, method)
}

// ListWithdrawMethods returns the public projection of withdrawal methods.
// GET /withdraw-methods
func (h *MethodHandler) ListWithdrawMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.ListWithdrawMethods(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, methods)
}
