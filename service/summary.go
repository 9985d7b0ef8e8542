package service

import (
	"fmt"

	"vaddi-calculator/domain"
)

// Summarizer turns results into one-line plain text for display under the figures.
type Summarizer struct {
	formatter CurrencyFormatter
}

func NewSummarizer(formatter CurrencyFormatter) Summarizer {
	if formatter.Symbol == "" {
		formatter = DefaultCurrencyFormatter
	}
	return Summarizer{formatter: formatter}
}

func (s Summarizer) Summarize(r domain.InstallmentResult) string {
	base := fmt.Sprintf("Collect %s every week for %d %s, %s in total on a principal of %s",
		s.formatter.Format(r.WeeklyAmount), r.WeekCount, weeksWord(r.WeekCount),
		s.formatter.Format(r.TotalCollection), s.formatter.Format(r.Principal))
	if r.TotalInterest == 0 {
		return base + ", with no interest."
	}
	return fmt.Sprintf("%s, of which %s is interest (%s).",
		base, s.formatter.Format(r.TotalInterest), FormatPercent(r.EffectiveRatePercent))
}

func (s Summarizer) ExplainPlan(p domain.WeekPlan, preference string) string {
	weekly := s.formatter.Format(p.WeeklyAmount)
	interest := s.formatter.Format(p.TotalInterest)
	switch preference {
	case PreferenceMinimizeInterest:
		return fmt.Sprintf("%d %s keeps the interest at %s (%s) with a weekly collection of %s.",
			p.WeekCount, weeksWord(p.WeekCount), interest, FormatPercent(p.EffectiveRatePercent), weekly)
	case PreferenceMinimizePayment:
		return fmt.Sprintf("%d %s brings the weekly collection down to %s, with %s of interest.",
			p.WeekCount, weeksWord(p.WeekCount), weekly, interest)
	default:
		return fmt.Sprintf("%d %s balances a weekly collection of %s against %s of interest (%s).",
			p.WeekCount, weeksWord(p.WeekCount), weekly, interest, FormatPercent(p.EffectiveRatePercent))
	}
}

func weeksWord(n int64) string {
	if n == 1 {
		return "week"
	}
	return "weeks"
}
