package service

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/rs/zerolog"

	"vaddi-calculator/domain"
	"vaddi-calculator/obs"
)

const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

var preferences = map[string]bool{
	PreferenceMinimizeInterest: true,
	PreferenceMinimizePayment:  true,
	PreferenceBalanced:         true,
}

type WeekPlanService struct {
	summarizer Summarizer
	metrics    *obs.CalculatorMetrics
	logger     zerolog.Logger
}

func NewWeekPlanService(
	formatter CurrencyFormatter,
	metrics *obs.CalculatorMetrics,
	logger zerolog.Logger,
) *WeekPlanService {
	return &WeekPlanService{
		summarizer: NewSummarizer(formatter),
		metrics:    metrics,
		logger:     logger.With().Str("component", "week_plan").Logger(),
	}
}

// Recommend evaluates every week count in [MinWeeks, MaxWeeks], drops those whose
// weekly amount exceeds MaxWeeklyAmount and ranks the rest by preference.
func (s *WeekPlanService) Recommend(
	ctx context.Context,
	input domain.WeekPlanInput,
) (domain.WeekPlanResult, error) {
	if err := validateWeekPlan(input); err != nil {
		return domain.WeekPlanResult{}, err
	}

	candidates := make([]domain.InstallmentResult, 0, input.MaxWeeks-input.MinWeeks+1)
	for weeks := input.MinWeeks; weeks <= input.MaxWeeks; weeks++ {
		if err := ctx.Err(); err != nil {
			return domain.WeekPlanResult{}, err
		}
		result, ok := Compute(input.Principal, weeks)
		if !ok {
			s.logger.Warn().Int64("weeks", weeks).Msg("skipping uncomputable week count")
			continue
		}
		if result.WeeklyAmount > input.MaxWeeklyAmount {
			continue
		}
		candidates = append(candidates, result)
	}

	if len(candidates) == 0 {
		return domain.WeekPlanResult{}, ErrNoWeekPlan
	}

	b := boundsOf(candidates)
	plans := make([]domain.WeekPlan, 0, len(candidates))
	for _, c := range candidates {
		plans = append(plans, domain.WeekPlan{
			WeekCount:            c.WeekCount,
			WeeklyAmount:         c.WeeklyAmount,
			TotalInterest:        c.TotalInterest,
			EffectiveRatePercent: c.EffectiveRatePercent,
			Score:                score(c, b, input.Preference),
			Reason:               reason(input.Preference),
		})
	}

	// Score descendente, a igualdad menos semanas primero
	slices.SortStableFunc(plans, func(x, y domain.WeekPlan) int {
		switch {
		case x.Score > y.Score:
			return -1
		case x.Score < y.Score:
			return 1
		}
		return cmp.Compare(x.WeekCount, y.WeekCount)
	})

	plans[0].Reason = s.summarizer.ExplainPlan(plans[0], input.Preference)
	s.metrics.WeekPlanServed()

	return domain.WeekPlanResult{
		RecommendedWeeks: plans[0].WeekCount,
		Plans:            plans,
	}, nil
}

func validateWeekPlan(input domain.WeekPlanInput) error {
	if input.Principal <= 0 {
		return invalid("principal", "must be positive")
	}
	if input.Principal > MaxPrincipal {
		return invalid("principal", "exceeds the supported maximum")
	}
	if input.MinWeeks < MinWeekCount {
		return invalid("min_weeks", "must be at least 1")
	}
	if input.MaxWeeks < MinWeekCount {
		return invalid("max_weeks", "must be at least 1")
	}
	if input.MinWeeks > input.MaxWeeks {
		return invalid("min_weeks", "must not exceed max_weeks")
	}
	if input.MaxWeeks > MaxWeekCount {
		return invalid("max_weeks", "exceeds the supported maximum")
	}
	if input.MaxWeeks-input.MinWeeks > MaxWeekRange {
		return invalid("max_weeks", "week range is too wide")
	}
	if input.MaxWeeklyAmount <= 0 {
		return invalid("max_weekly_amount", "must be positive")
	}
	if !preferences[input.Preference] {
		return invalid("preference", "must be minimize_interest, minimize_payment or balanced")
	}
	return nil
}

type bounds struct {
	minInterest, maxInterest int64
	minWeekly, maxWeekly     int64
	minWeeks, maxWeeks       int64
}

func boundsOf(results []domain.InstallmentResult) bounds {
	b := bounds{
		minInterest: math.MaxInt64, minWeekly: math.MaxInt64, minWeeks: math.MaxInt64,
	}
	for _, r := range results {
		b.minInterest = min(b.minInterest, r.TotalInterest)
		b.maxInterest = max(b.maxInterest, r.TotalInterest)
		b.minWeekly = min(b.minWeekly, r.WeeklyAmount)
		b.maxWeekly = max(b.maxWeekly, r.WeeklyAmount)
		b.minWeeks = min(b.minWeeks, r.WeekCount)
		b.maxWeeks = max(b.maxWeeks, r.WeekCount)
	}
	return b
}

// normalized maps v within [lo, hi] to 10 at lo and 0 at hi. A flat range scores 10.
func normalized(v, lo, hi int64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - float64(v-lo)/float64(hi-lo))
}

func score(r domain.InstallmentResult, b bounds, preference string) float64 {
	interestScore := normalized(r.TotalInterest, b.minInterest, b.maxInterest)
	paymentScore := normalized(r.WeeklyAmount, b.minWeekly, b.maxWeekly)
	termScore := normalized(r.WeekCount, b.minWeeks, b.maxWeeks)

	var s float64
	switch preference {
	case PreferenceMinimizeInterest:
		s = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case PreferenceMinimizePayment:
		s = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	default:
		s = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}
	return math.Round(s*100) / 100
}

func reason(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Week count with the least rounding interest"
	case PreferenceMinimizePayment:
		return "Week count with the smallest weekly collection"
	default:
		return "Balance between weekly collection and rounding interest"
	}
}
