// Package server exposes the SplitEase API over HTTP: auth, group and
// expense management, and the balance/settlement queries.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talhafarman98/SplitEase/internal/auth"
	"github.com/talhafarman98/SplitEase/internal/middleware"
	"github.com/talhafarman98/SplitEase/internal/service"
)

// Handler wires the API routes to the application services.
type Handler struct {
	groups *service.GroupService
	auth   *service.AuthService
	tokens *auth.JWTManager
}

// NewHandler constructs the API handler.
func NewHandler(groups *service.GroupService, authSvc *service.AuthService, tokens *auth.JWTManager) *Handler {
	return &Handler{
		groups: groups,
		auth:   authSvc,
		tokens: tokens,
	}
}

// Router builds the chi router with all middleware and routes mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logging)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.tokens))

			r.Post("/groups", h.handleCreateGroup)
			r.Get("/groups", h.handleListGroups)

			r.Route("/groups/{groupID}", func(r chi.Router) {
				r.Get("/", h.handleGetGroup)
				r.Delete("/", h.handleDeleteGroup)
				r.Post("/members", h.handleAddMember)
				r.Post("/expenses", h.handleAddExpense)
				r.Delete("/expenses/{expenseID}", h.handleRemoveExpense)
				r.Get("/balances", h.handleBalances)
				r.Get("/settlement", h.handleSettlementPlan)

				// Settling is destructive; keep retry storms in check.
				r.With(httprate.LimitByIP(10, time.Minute)).
					Post("/settle", h.handleSettle)
			})
		})
	})

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
