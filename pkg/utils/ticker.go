package utils

import (
	"strings"
)

// Index symbols accepted as user input, mapped to Yahoo Finance form.
var indexTickers = map[string]string{
	"SPX":    "^GSPC",
	"SP500":  "^GSPC",
	"S&P500": "^GSPC",
	"DJI":    "^DJI",
	"NDX":    "^NDX",
	"IXIC":   "^IXIC",
	"VIX":    "^VIX",
}

// NormalizeTicker normalizes a user-input ticker: trims whitespace,
// uppercases, and drops a leading "$" (common in chat and social feeds).
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	return strings.TrimPrefix(ticker, "$")
}

// ToYahooSymbol converts a listing symbol to the form Yahoo Finance expects.
// Share-class separators become dashes (BRK.B → BRK-B) and known index
// aliases map to their caret symbols.
func ToYahooSymbol(ticker string) string {
	ticker = NormalizeTicker(ticker)

	if idx, ok := indexTickers[ticker]; ok {
		return idx
	}
	if strings.HasPrefix(ticker, "^") {
		return ticker
	}
	return strings.ReplaceAll(ticker, ".", "-")
}

// IsIndex reports whether the ticker names an index rather than a stock.
func IsIndex(ticker string) bool {
	return strings.HasPrefix(ToYahooSymbol(ticker), "^")
}
