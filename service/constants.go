package service

const (
	MaxPrincipal = 1_000_000_000_000 // 1 lakh crore
	MaxWeekCount = 520               // 10 years of weekly collection
	MinWeekCount = 1

	// Week plan search bounds
	MaxWeekRange = 260

	DefaultCurrencySymbol = "₹"
)
