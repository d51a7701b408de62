package utils

import "fmt"

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatEPS formats a per-share figure in dollars.
// e.g., 1.5 → "$1.50", -0.07 → "-$0.07"
func FormatEPS(eps float64) string {
	if eps < 0 {
		return fmt.Sprintf("-$%.2f", -eps)
	}
	return fmt.Sprintf("$%.2f", eps)
}
