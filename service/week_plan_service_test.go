package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"vaddi-calculator/domain"
)

func newWeekPlanService() *WeekPlanService {
	return NewWeekPlanService(DefaultCurrencyFormatter, nil, zerolog.Nop())
}

func TestRecommend_MinimizeInterest(t *testing.T) {
	svc := newWeekPlanService()

	result, err := svc.Recommend(context.Background(), domain.WeekPlanInput{
		Principal:       1000,
		MinWeeks:        8,
		MaxWeeks:        12,
		MaxWeeklyAmount: 200,
		Preference:      PreferenceMinimizeInterest,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 5)
	require.Equal(t, int64(10), result.RecommendedWeeks)

	weeks := make([]int64, 0, len(result.Plans))
	for i, plan := range result.Plans {
		weeks = append(weeks, plan.WeekCount)
		if i > 0 {
			require.LessOrEqual(t, plan.Score, result.Plans[i-1].Score)
		}
	}
	require.Equal(t, []int64{10, 8, 11, 9, 12}, weeks)

	top := result.Plans[0]
	require.Equal(t, int64(100), top.WeeklyAmount)
	require.Zero(t, top.TotalInterest)
	require.Equal(t, "10 weeks keeps the interest at ₹0 (0.00%) with a weekly collection of ₹100.", top.Reason)
	require.Equal(t, "Week count with the least rounding interest", result.Plans[1].Reason)
}

func TestRecommend_RespectsWeeklyLimit(t *testing.T) {
	svc := newWeekPlanService()

	result, err := svc.Recommend(context.Background(), domain.WeekPlanInput{
		Principal:       1000,
		MinWeeks:        8,
		MaxWeeks:        12,
		MaxWeeklyAmount: 100,
		Preference:      PreferenceMinimizePayment,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 3)
	require.Equal(t, int64(11), result.RecommendedWeeks)
	for _, plan := range result.Plans {
		require.LessOrEqual(t, plan.WeeklyAmount, int64(100))
	}
}

func TestRecommend_SingleCandidate(t *testing.T) {
	svc := newWeekPlanService()

	result, err := svc.Recommend(context.Background(), domain.WeekPlanInput{
		Principal:       500,
		MinWeeks:        1,
		MaxWeeks:        1,
		MaxWeeklyAmount: 500,
		Preference:      PreferenceBalanced,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	require.Equal(t, 10.0, result.Plans[0].Score)
}

func TestRecommend_NoPlan(t *testing.T) {
	svc := newWeekPlanService()

	_, err := svc.Recommend(context.Background(), domain.WeekPlanInput{
		Principal:       1000,
		MinWeeks:        8,
		MaxWeeks:        12,
		MaxWeeklyAmount: 50,
		Preference:      PreferenceBalanced,
	})
	require.ErrorIs(t, err, ErrNoWeekPlan)
}

func TestRecommend_InvalidInput(t *testing.T) {
	valid := domain.WeekPlanInput{
		Principal: 1000, MinWeeks: 8, MaxWeeks: 12, MaxWeeklyAmount: 200, Preference: PreferenceBalanced,
	}
	cases := map[string]struct {
		mutate func(in *domain.WeekPlanInput)
		field  string
	}{
		"principal":      {func(in *domain.WeekPlanInput) { in.Principal = 0 }, "principal"},
		"min weeks":      {func(in *domain.WeekPlanInput) { in.MinWeeks = 0 }, "min_weeks"},
		"zero max weeks": {func(in *domain.WeekPlanInput) { in.MaxWeeks = 0 }, "max_weeks"},
		"inverted range": {func(in *domain.WeekPlanInput) { in.MinWeeks = 20 }, "min_weeks"},
		"max weeks":      {func(in *domain.WeekPlanInput) { in.MaxWeeks = MaxWeekCount + 1 }, "max_weeks"},
		"wide range":     {func(in *domain.WeekPlanInput) { in.MinWeeks, in.MaxWeeks = 1, MaxWeekRange+2 }, "max_weeks"},
		"weekly limit":   {func(in *domain.WeekPlanInput) { in.MaxWeeklyAmount = 0 }, "max_weekly_amount"},
		"preference":     {func(in *domain.WeekPlanInput) { in.Preference = "cheapest" }, "preference"},
	}
	svc := newWeekPlanService()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, err := svc.Recommend(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRecommend_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newWeekPlanService().Recommend(ctx, domain.WeekPlanInput{
		Principal: 1000, MinWeeks: 8, MaxWeeks: 12, MaxWeeklyAmount: 200, Preference: PreferenceBalanced,
	})
	require.ErrorIs(t, err, context.Canceled)
}
