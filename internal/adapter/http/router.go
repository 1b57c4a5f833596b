package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/finbook/internal/adapter/http/handler"
	"github.com/iho/finbook/internal/adapter/http/middleware"
	"github.com/iho/finbook/internal/infrastructure/metrics"
	"github.com/iho/finbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	MovementHandler *handler.MovementHandler
	RecordHandler   *handler.RecordHandler
	EntryHandler    *handler.EntryHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler

	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Archive)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
			r.Get("/{id}/records", cfg.RecordHandler.ListByAccount)
			r.Get("/{id}/balance/history", cfg.EntryHandler.HistoricalBalance)
		})

		// Movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/income", cfg.MovementHandler.RecordIncome)
			r.Post("/expense", cfg.MovementHandler.RecordExpense)
			r.Post("/investment", cfg.MovementHandler.RecordInvestment)
			r.Post("/credit-usage", cfg.MovementHandler.RecordCreditUsage)
		})

		// Transfers
		r.Post("/transfers", cfg.MovementHandler.PerformTransfer)

		// Records
		r.Route("/records", func(r chi.Router) {
			r.Get("/{id}", cfg.RecordHandler.Get)
			r.Patch("/{id}", cfg.RecordHandler.Update)
			r.Post("/{id}/reverse", cfg.RecordHandler.Reverse)
			r.Get("/{id}/entries", cfg.RecordHandler.ListEntries)
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
