package service

import (
	"github.com/shopspring/decimal"

	"vaddi-calculator/domain"
)

var hundred = decimal.NewFromInt(100)

// Compute derives the weekly installment figures for a principal split over weekCount
// weeks. It reports false when the input cannot produce a result: non-positive
// principal or week count, or values past the supported bounds.
//
// The weekly amount is rounded up, so the total collection never falls below the
// principal and the rounding surplus is the interest.
func Compute(principal, weekCount int64) (domain.InstallmentResult, bool) {
	if principal <= 0 || weekCount < MinWeekCount {
		return domain.InstallmentResult{}, false
	}
	if principal > MaxPrincipal || weekCount > MaxWeekCount {
		return domain.InstallmentResult{}, false
	}

	weekly := (principal + weekCount - 1) / weekCount
	total := weekly * weekCount
	interest := total - principal

	rate, _ := effectiveRate(interest, principal).Float64()

	result := domain.InstallmentResult{
		Principal:            principal,
		WeekCount:            weekCount,
		WeeklyAmount:         weekly,
		TotalCollection:      total,
		TotalInterest:        interest,
		EffectiveRatePercent: rate,
	}
	result.Formatted = DefaultCurrencyFormatter.FormatResult(result)
	return result, true
}

// effectiveRate is interest/principal as a percentage, rounded half away from zero
// to two places.
func effectiveRate(interest, principal int64) decimal.Decimal {
	return decimal.NewFromInt(interest).
		Mul(hundred).
		Div(decimal.NewFromInt(principal)).
		Round(2)
}

// Validate checks an input the way Compute does but explains which field failed.
func Validate(input domain.InstallmentInput) error {
	if input.Principal <= 0 {
		return invalid("principal", "must be positive")
	}
	if input.Principal > MaxPrincipal {
		return invalid("principal", "exceeds the supported maximum")
	}
	if input.WeekCount < MinWeekCount {
		return invalid("week_count", "must be at least 1")
	}
	if input.WeekCount > MaxWeekCount {
		return invalid("week_count", "exceeds the supported maximum")
	}
	return nil
}
