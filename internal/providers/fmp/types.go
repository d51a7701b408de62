package fmp

// fmpConstituent is one row of /sp500_constituent.
type fmpConstituent struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	SubSector string `json:"subSector"`
}

// fmpEarnings is one row of /historical/earning_calendar/{symbol}.
// EPS fields are null for quarters that have not been reported.
type fmpEarnings struct {
	Date             string   `json:"date"`
	Symbol           string   `json:"symbol"`
	EPS              *float64 `json:"eps"`
	EPSEstimated     *float64 `json:"epsEstimated"`
	Time             string   `json:"time"` // "bmo" or "amc"
	FiscalDateEnding string   `json:"fiscalDateEnding"`
}
