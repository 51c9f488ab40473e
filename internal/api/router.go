// internal/api/router.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wallet-ledger/internal/api/handler"
	apimw "wallet-ledger/internal/api/middleware"
	"wallet-ledger/internal/api/types"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Requests  *handler.RequestHandler
	Methods   *handler.MethodHandler
	History   *handler.HistoryHandler
	Wallets   *handler.WalletHandler
	Validator *handler.ValidatorHandler
}

// RouterOptions configures cross-cutting HTTP behaviour.
type RouterOptions struct {
	// AllowedOrigins are the front-end origins allowed by CORS.
	AllowedOrigins []string
	// Idempotency wraps request creation routes. Nil means no idempotency.
	Idempotency func(http.Handler) http.Handler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, opts RouterOptions, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	idempotent := opts.Idempotency
	if idempotent == nil {
		idempotent = func(next http.Handler) http.Handler { return next }
	}

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(apimw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, types.MessageResponse{Message: "Wallet ledger backend is running"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, types.HealthResponse{Status: "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/deposits", func(r chi.Router) {
		r.With(idempotent).Post("/", h.Requests.CreateDeposit)
		r.Get("/", h.Requests.ListDeposits)
		r.Post("/{id}/validate", h.Requests.ValidateDeposit)
		r.Post("/{id}/reject", h.Requests.RejectDeposit)
	})

	r.Route("/withdrawals", func(r chi.Router) {
		r.With(idempotent).Post("/", h.Requests.CreateWithdrawal)
		r.Get("/", h.Requests.ListWithdrawals)
		r.Post("/{id}/validate", h.Requests.ValidateWithdrawal)
		r.Post("/{id}/reject", h.Requests.RejectWithdrawal)
	})

	r.Route("/transaction-methods", func(r chi.Router) {
		r.Get("/", h.Methods.ListMethods)
		r.Get("/{id}", h.Methods.GetMethod)
	})
	r.Get("/withdraw-methods", h.Methods.ListWithdrawMethods)

	r.Get("/history/{user_id}", h.History.GetUserHistory)
	r.Get("/wallets/{user_id}", h.Wallets.GetBalance)

	r.Route("/validator", func(r chi.Router) {
		r.Post("/login", h.Validator.Login)
		r.Post("/verify-otp", h.Validator.VerifyOTP)
	})

	return r
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to write JSON response", "error", err)
	}
}
