package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"vaddi-calculator/config"
	httpLayer "vaddi-calculator/http"
	"vaddi-calculator/obs"
	"vaddi-calculator/repository"
	"vaddi-calculator/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	calcMetrics := obs.NewCalculatorMetrics(cfg.MetricsNamespace, registry)
	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, registry)

	formatter := service.CurrencyFormatter{Symbol: cfg.CurrencySymbol}
	installmentService := service.NewInstallmentService(cache, formatter, calcMetrics, logger)
	weekPlanService := service.NewWeekPlanService(formatter, calcMetrics, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Installments:   httpLayer.NewInstallmentHandler(installmentService, logger),
		WeekPlans:      httpLayer.NewWeekPlanHandler(weekPlanService, logger),
		Limiter:        rateLimiter,
		Logger:         logger,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error().Err(err).Msg("start http server")
		return
	case <-quit:
		logger.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}

	logger.Info().Msg("server exited")
}

// newCache prefers Redis and falls back to process memory when REDIS_URL is unset
// or unreachable.
func newCache(cfg *config.Config, logger zerolog.Logger) (repository.CacheRepository, func()) {
	if cfg.RedisURL == "" {
		logger.Info().Msg("REDIS_URL not set, caching results in memory")
		return newMemoryCache(cfg)
	}

	redisCache, err := repository.NewRedisCacheFromURL(cfg.RedisURL, "vaddi:", cfg.CacheTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, caching results in memory")
		_ = redisCache.Close()
		return newMemoryCache(cfg)
	}

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}
}

func newMemoryCache(cfg *config.Config) (repository.CacheRepository, func()) {
	cache := repository.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)
	return cache, cache.Stop
}
