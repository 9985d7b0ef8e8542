package service

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"vaddi-calculator/domain"
)

// CurrencyFormatter renders whole currency units with South Asian digit grouping:
// the last three digits form one group, every group above it has two.
type CurrencyFormatter struct {
	Symbol string
}

var DefaultCurrencyFormatter = CurrencyFormatter{Symbol: DefaultCurrencySymbol}

// FormatCurrency formats amount with the default currency symbol, e.g. ₹1,00,000.
func FormatCurrency(amount int64) string {
	return DefaultCurrencyFormatter.Format(amount)
}

func (f CurrencyFormatter) Format(amount int64) string {
	sign := ""
	digits := strconv.FormatInt(amount, 10)
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	return sign + f.Symbol + groupDigits(digits)
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	first := len(head) % 2
	if first == 0 {
		first = 2
	}
	b.WriteString(head[:first])
	for i := first; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatPercent renders a percentage with exactly two decimals, e.g. 0.90%.
func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2) + "%"
}

// FormatResult builds the display strings for result.
func (f CurrencyFormatter) FormatResult(result domain.InstallmentResult) domain.FormattedResult {
	return domain.FormattedResult{
		Principal:       f.Format(result.Principal),
		WeeklyAmount:    f.Format(result.WeeklyAmount),
		TotalCollection: f.Format(result.TotalCollection),
		TotalInterest:   f.Format(result.TotalInterest),
		EffectiveRate:   FormatPercent(result.EffectiveRatePercent),
		Summary:         Summarizer{formatter: f}.Summarize(result),
	}
}
