package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ravikant-m/voicebank/internal/adapter/http/handler"
	"github.com/ravikant-m/voicebank/internal/adapter/http/middleware"
	"github.com/ravikant-m/voicebank/internal/infrastructure/auth"
	"github.com/ravikant-m/voicebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	ChatHandler      *handler.ChatHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	AuthRateLimiter  *middleware.RateLimiter
	Logger           zerolog.Logger
	RequireAuth      bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints, rate limited so codes and PINs cannot be
		// brute-forced.
		r.Group(func(r chi.Router) {
			if cfg.AuthRateLimiter != nil {
				r.Use(cfg.AuthRateLimiter.Limit)
			}
			r.Post("/auth/send-otp", cfg.AuthHandler.SendOTP)
			r.Post("/auth/verify-otp", cfg.AuthHandler.VerifyOTP)
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})

		// Account-scoped endpoints.
		r.Group(func(r chi.Router) {
			if cfg.RequireAuth && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
				r.Get("/{id}/transactions", cfg.AccountHandler.ListTransactions)
			})

			r.Group(func(r chi.Router) {
				if cfg.IdempotencyStore != nil {
					r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
				}
				r.Post("/transfer", cfg.TransferHandler.Create)
			})

			r.Post("/chat", cfg.ChatHandler.Chat)
		})

		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
