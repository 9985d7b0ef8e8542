package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"vaddi-calculator/domain"
	"vaddi-calculator/obs"
	"vaddi-calculator/repository"
)

type InstallmentService struct {
	cache     repository.CacheRepository
	formatter CurrencyFormatter
	metrics   *obs.CalculatorMetrics
	logger    zerolog.Logger
}

// NewInstallmentService creates an InstallmentService. cache and metrics may be nil.
func NewInstallmentService(
	cache repository.CacheRepository,
	formatter CurrencyFormatter,
	metrics *obs.CalculatorMetrics,
	logger zerolog.Logger,
) *InstallmentService {
	if formatter.Symbol == "" {
		formatter = DefaultCurrencyFormatter
	}
	return &InstallmentService{
		cache:     cache,
		formatter: formatter,
		metrics:   metrics,
		logger:    logger.With().Str("component", "installment").Logger(),
	}
}

// Calculate validates input and returns the installment figures with display strings.
// Invalid input yields an error matching ErrInvalidInput.
func (s *InstallmentService) Calculate(
	ctx context.Context,
	input domain.InstallmentInput,
) (domain.InstallmentResult, error) {
	if err := Validate(input); err != nil {
		s.metrics.Observe(obs.OutcomeInvalid)
		return domain.InstallmentResult{}, err
	}

	key := cacheKey(input.Principal, input.WeekCount)
	if result, ok := s.lookup(ctx, key); ok {
		s.metrics.Observe(obs.OutcomeCached)
		return s.present(result, input), nil
	}

	result, ok := Compute(input.Principal, input.WeekCount)
	if !ok {
		// Validate and Compute share bounds; reaching this is a programming error.
		s.metrics.Observe(obs.OutcomeInvalid)
		return domain.InstallmentResult{}, invalid("input", "out of range")
	}
	s.metrics.Observe(obs.OutcomeComputed)

	// Guardar en cache (no crítico si falla)
	s.store(ctx, key, result)

	return s.present(result, input), nil
}

// Schedule lays the calculated collection out week by week starting after start.
func (s *InstallmentService) Schedule(
	ctx context.Context,
	input domain.InstallmentInput,
	start time.Time,
) (domain.Schedule, error) {
	result, err := s.Calculate(ctx, input)
	if err != nil {
		return domain.Schedule{}, err
	}
	return domain.Schedule{
		Result:    result,
		StartDate: start,
		Entries:   BuildSchedule(result, start),
	}, nil
}

func (s *InstallmentService) present(
	result domain.InstallmentResult,
	input domain.InstallmentInput,
) domain.InstallmentResult {
	result.NominalRate = input.NominalRate
	result.Formatted = s.formatter.FormatResult(result)
	return result
}

func (s *InstallmentService) lookup(ctx context.Context, key string) (domain.InstallmentResult, bool) {
	if s.cache == nil {
		return domain.InstallmentResult{}, false
	}
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.CacheError("get")
		s.logger.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		return domain.InstallmentResult{}, false
	}
	if !found {
		return domain.InstallmentResult{}, false
	}
	var result domain.InstallmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.metrics.CacheError("decode")
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return domain.InstallmentResult{}, false
	}
	s.logger.Debug().Str("key", key).Msg("cache hit")
	return result, true
}

func (s *InstallmentService) store(ctx context.Context, key string, result domain.InstallmentResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.metrics.CacheError("encode")
		s.logger.Warn().Err(err).Msg("encode result for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.metrics.CacheError("set")
		s.logger.Warn().Err(err).Str("key", key).Msg("cache store failed")
	}
}

func cacheKey(principal, weekCount int64) string {
	return fmt.Sprintf("installment:%d:%d", principal, weekCount)
}
