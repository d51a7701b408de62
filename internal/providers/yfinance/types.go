package yfinance

// yfSearchResponse wraps the v1 search API response.
// News entries are kept as generic maps so every field Yahoo returns
// reaches the caller unchanged.
type yfSearchResponse struct {
	News []map[string]any `json:"news"`
}

// Column headers on the earnings calendar table, lower-cased.
const (
	colEarningDate = "earnings date"
	colEPSEstimate = "eps estimate"
	colReportedEPS = "reported eps"
)
