package service

import (
	"time"

	"vaddi-calculator/domain"
)

// BuildSchedule returns one entry per week. Week i falls due 7*i days after start and
// the outstanding balance of the last week is zero.
func BuildSchedule(result domain.InstallmentResult, start time.Time) []domain.ScheduleEntry {
	if result.WeekCount <= 0 || result.WeeklyAmount <= 0 {
		return nil
	}
	entries := make([]domain.ScheduleEntry, 0, result.WeekCount)
	var collected int64
	for week := int64(1); week <= result.WeekCount; week++ {
		collected += result.WeeklyAmount
		entries = append(entries, domain.ScheduleEntry{
			Week:            week,
			DueDate:         start.AddDate(0, 0, int(week)*7),
			Amount:          result.WeeklyAmount,
			CollectedToDate: collected,
			Outstanding:     result.TotalCollection - collected,
		})
	}
	return entries
}
