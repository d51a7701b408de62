package models

// SurpriseType classifies an earnings surprise against fixed thresholds.
type SurpriseType string

const (
	SurprisePositive SurpriseType = "Positive"
	SurpriseNegative SurpriseType = "Negative"
	SurpriseNeutral  SurpriseType = "Neutral"
)

// EarningsEvent is one row of a ticker's upstream earnings history.
// Either date field may be empty; EPS values are nil when the provider
// has not published them.
type EarningsEvent struct {
	Ticker        string   `json:"ticker"`
	StartDateTime string   `json:"startdatetime,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EPSEstimate   *float64 `json:"epsestimate,omitempty"`
	EPSActual     *float64 `json:"epsactual,omitempty"`
}

// EarningsRecord is a reported quarter that fell inside the lookback window.
type EarningsRecord struct {
	Ticker              string       `json:"ticker"`
	ReportDate          string       `json:"report_date"` // YYYY-MM-DD
	EstimatedEPS        float64      `json:"estimated_eps"`
	ActualEPS           float64      `json:"actual_eps"`
	EarningsSurprisePct float64      `json:"earnings_surprise_pct"`
	SurpriseType        SurpriseType `json:"surprise_type"`
}
