package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[int64]string{
		0:             "₹0",
		9:             "₹9",
		999:           "₹999",
		1000:          "₹1,000",
		10000:         "₹10,000",
		100000:        "₹1,00,000",
		1234567:       "₹12,34,567",
		10000000:      "₹1,00,00,000",
		-100000:       "-₹1,00,000",
		1000000000000: "₹10,00,00,00,00,000",
	}
	for amount, want := range cases {
		require.Equal(t, want, FormatCurrency(amount), "amount %d", amount)
	}
}

func TestCurrencyFormatterSymbol(t *testing.T) {
	f := CurrencyFormatter{Symbol: "Rs. "}
	require.Equal(t, "Rs. 1,00,000", f.Format(100000))
}

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "0.00%", FormatPercent(0))
	require.Equal(t, "0.90%", FormatPercent(0.9))
	require.Equal(t, "12.35%", FormatPercent(12.35))
	require.Equal(t, "700.00%", FormatPercent(700))
}
