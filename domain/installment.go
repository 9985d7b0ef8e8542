package domain

import "time"

// InstallmentInput is the raw user input of the calculator.
// NominalRate is stored and echoed back but does not take part in the formula.
type InstallmentInput struct {
	Principal   int64 `json:"principal"`
	WeekCount   int64 `json:"week_count"`
	NominalRate int64 `json:"nominal_rate"`
}

type InstallmentResult struct {
	Principal            int64   `json:"principal"`
	WeekCount            int64   `json:"week_count"`
	NominalRate          int64   `json:"nominal_rate"`
	WeeklyAmount         int64   `json:"weekly_amount"`
	TotalCollection      int64   `json:"total_collection"`
	TotalInterest        int64   `json:"total_interest"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`

	Formatted FormattedResult `json:"formatted"`
}

// FormattedResult carries display strings for every amount of an InstallmentResult.
type FormattedResult struct {
	Principal       string `json:"principal"`
	WeeklyAmount    string `json:"weekly_amount"`
	TotalCollection string `json:"total_collection"`
	TotalInterest   string `json:"total_interest"`
	EffectiveRate   string `json:"effective_rate"`
	Summary         string `json:"summary"`
}

type ScheduleEntry struct {
	Week            int64     `json:"week"`
	DueDate         time.Time `json:"due_date"`
	Amount          int64     `json:"amount"`
	CollectedToDate int64     `json:"collected_to_date"`
	Outstanding     int64     `json:"outstanding"`
}

type Schedule struct {
	Result    InstallmentResult `json:"result"`
	StartDate time.Time         `json:"start_date"`
	Entries   []ScheduleEntry   `json:"entries"`
}
