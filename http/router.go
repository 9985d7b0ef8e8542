package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"vaddi-calculator/obs"
)

type RouterConfig struct {
	Installments   *InstallmentHandler
	WeekPlans      *WeekPlanHandler
	Limiter        *RateLimiter // nil disables rate limiting
	Logger         zerolog.Logger
	HTTPMetrics    *obs.HTTPMetrics
	MetricsHandler http.Handler
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Calculation-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(obs.RequestLogger{Logger: cfg.Logger}.Middleware)
	r.Use(obs.HTTPObs{Metrics: cfg.HTTPMetrics}.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, cfg.Logger, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/installments", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(func(next http.Handler) http.Handler {
				return RateLimitMiddleware(cfg.Limiter, cfg.Logger, next)
			})
		}
		r.Get("/calculate", cfg.Installments.Calculate)
		r.Post("/calculate", cfg.Installments.Calculate)
		r.Post("/schedule", cfg.Installments.Schedule)
		r.Post("/week-plans", cfg.WeekPlans.Recommend)
	})

	return r
}
