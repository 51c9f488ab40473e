// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"wallet-ledger/internal/api/types"
	"wallet-ledger/internal/util"
)

// DefaultTimeout bounds the time a single request may spend in a handler.
const DefaultTimeout = 30 * time.Second

// responder holds the JSON helpers shared by every handler.
type responder struct {
	logger *slog.Logger
}

// Helper function to send JSON responses.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// errorStatus maps a domain error to its HTTP status and public message.
var errorStatus = []struct {
	target error
	code   int
}{
	{util.ErrInvalidInput, http.StatusBadRequest},
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrMethodNotFound, http.StatusNotFound},
	{util.ErrNotFound, http.StatusNotFound},
	{util.ErrDuplicateTransaction, http.StatusBadRequest},
	{util.ErrAlreadyProcessed, http.StatusBadRequest},
	{util.ErrInsufficientFunds, http.StatusBadRequest},
	{util.ErrInvalidMethod, http.StatusBadRequest},
	{util.ErrNoActivePack, http.StatusBadRequest},
	{util.ErrUnauthorized, http.StatusUnauthorized},
}

// Helper function to send error responses. Only the sentinel's own message
// reaches the client; wrapped context stays in the logs.
func (h responder) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	for _, e := range errorStatus {
		if util.IsError(err, e.target) {
			statusCode = e.code
			message = e.target.Error()
			break
		}
	}
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("Unhandled service error", "error", err)
	} else {
		h.logger.Debug("Request rejected", "status", statusCode, "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", util.ErrInvalidInput)
	}
	return nil
}

// idParam parses a positive integer URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", util.ErrInvalidInput, name)
	}
	return id, nil
}
