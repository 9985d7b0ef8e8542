package domain

type WeekPlanInput struct {
	Principal       int64  `json:"principal"`
	MinWeeks        int64  `json:"min_weeks"`
	MaxWeeks        int64  `json:"max_weeks"`
	MaxWeeklyAmount int64  `json:"max_weekly_amount"`
	Preference      string `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type WeekPlan struct {
	WeekCount            int64   `json:"week_count"`
	WeeklyAmount         int64   `json:"weekly_amount"`
	TotalInterest        int64   `json:"total_interest"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`
	Score                float64 `json:"score"`
	Reason               string  `json:"reason"`
}

type WeekPlanResult struct {
	RecommendedWeeks int64      `json:"recommended_weeks"`
	Plans            []WeekPlan `json:"plans"`
}
