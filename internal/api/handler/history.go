// internal/api/handler/history.go
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"wallet-ledger/internal/service"
	"wallet-ledger/internal/util"
)

// HistoryHandler serves a user's finalized transactions.
type HistoryHandler struct {
	responder
	service       service.HistoryService
	defaultLocale string
}

// NewHistoryHandler creates a new HistoryHandler. defaultLocale is used when
// the request names none.
func NewHistoryHandler(svc service.HistoryService, defaultLocale string, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		responder:     responder{logger: logger},
		service:       svc,
		defaultLocale: defaultLocale,
	}
}

// GetUserHistory returns the user's history, newest first.
// GET /history/{user_id}?locale=fr
func (h *HistoryHandler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	entries, err := h.service.ListUserHistory(r.Context(), userID, h.locale(r))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, entries)
}

// locale picks ?locale=, then the first Accept-Language tag, then the default.
// Locales we cannot format fall through to the default.
func (h *HistoryHandler) locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); util.SupportedLocale(l) {
		return l
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		tag, _, _ := strings.Cut(al, ",")
		tag, _, _ = strings.Cut(tag, ";")
		if tag = strings.TrimSpace(tag); util.SupportedLocale(tag) {
			return tag
		}
	}
	return h.defaultLocale
}
