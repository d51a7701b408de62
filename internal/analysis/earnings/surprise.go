// Package earnings turns raw earnings history rows into surprise records.
package earnings

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/earningstracker/pkg/models"
)

// SurpriseThreshold is the percentage beyond which a surprise is
// Positive or Negative. The bounds are exclusive.
const SurpriseThreshold = 5.0

// SkipReason explains why a history row produced no record.
type SkipReason string

const (
	SkipNoDate      SkipReason = "no_date"
	SkipBadDate     SkipReason = "bad_date"
	SkipOutOfWindow SkipReason = "out_of_window"
	SkipMissingEPS  SkipReason = "missing_eps"
	SkipBadEPS      SkipReason = "bad_eps"
)

// ErrBadDate is returned by ParseReportTime for unrecognized input.
var ErrBadDate = errors.New("unrecognized report date")

// Window returns the lookback interval [now-days, now] in UTC.
// A negative days value is treated as 0.
func Window(now time.Time, days int) (start, end time.Time) {
	end = now.UTC()
	start = end.AddDate(0, 0, -max(days, 0))
	return start, end
}

// InWindow reports whether t lies in [start, end], bounds included.
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ParseReportTime parses an ISO 8601 timestamp. A trailing "Z" is
// accepted, as are fractional seconds and explicit offsets. Values without
// an offset, including bare dates, are read as UTC.
func ParseReportTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// SurprisePct is (actual - estimate) / |estimate| * 100, or 0 when the
// estimate is zero.
func SurprisePct(actual, estimate float64) float64 {
	if estimate == 0 {
		return 0
	}
	return (actual - estimate) / math.Abs(estimate) * 100
}

// Classify labels an unrounded surprise percentage.
func Classify(pct float64) models.SurpriseType {
	switch {
	case pct > SurpriseThreshold:
		return models.SurprisePositive
	case pct < -SurpriseThreshold:
		return models.SurpriseNegative
	default:
		return models.SurpriseNeutral
	}
}

// Round2 rounds the exact binary value of v to two decimal places, ties
// to even. 2.675 is stored just below the tie and rounds to 2.67.
// Non-finite values are returned unchanged.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 30, 64))
	if err != nil {
		return v
	}
	f, _ := d.RoundBank(2).Float64()
	return f
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BuildRecord converts one history row into a record if it was reported
// inside [start, end] with both EPS figures present and finite. Otherwise it returns
// the reason the row was dropped.
func BuildRecord(ev models.EarningsEvent, start, end time.Time) (models.EarningsRecord, SkipReason, bool) {
	raw := ev.StartDateTime
	if raw == "" {
		raw = ev.StartDate
	}
	if raw == "" {
		return models.EarningsRecord{}, SkipNoDate, false
	}

	reported, err := ParseReportTime(raw)
	if err != nil {
		return models.EarningsRecord{}, SkipBadDate, false
	}
	if !InWindow(reported, start, end) {
		return models.EarningsRecord{}, SkipOutOfWindow, false
	}
	if ev.EPSActual == nil || ev.EPSEstimate == nil {
		return models.EarningsRecord{}, SkipMissingEPS, false
	}

	actual, estimate := *ev.EPSActual, *ev.EPSEstimate
	pct := SurprisePct(actual, estimate)
	if !isFinite(actual) || !isFinite(estimate) || !isFinite(pct) {
		return models.EarningsRecord{}, SkipBadEPS, false
	}

	return models.EarningsRecord{
		Ticker:              ev.Ticker,
		ReportDate:          reported.Format(time.DateOnly),
		EstimatedEPS:        estimate,
		ActualEPS:           actual,
		EarningsSurprisePct: Round2(pct),
		SurpriseType:        Classify(pct),
	}, "", true
}

// SortBySurprise orders records by absolute surprise, largest first.
// Records with equal magnitude keep their relative order.
func SortBySurprise(records []models.EarningsRecord) {
	slices.SortStableFunc(records, func(a, b models.EarningsRecord) int {
		x, y := math.Abs(a.EarningsSurprisePct), math.Abs(b.EarningsSurprisePct)
		switch {
		case x > y:
			return -1
		case x < y:
			return 1
		default:
			return 0
		}
	})
}

// Filter keeps records whose type matches filter case-insensitively (when
// filter is non-empty) and whose absolute surprise is at least
// minSurprise (when minSurprise is non-zero). Order is preserved.
func Filter(records []models.EarningsRecord, filter string, minSurprise float64) []models.EarningsRecord {
	out := make([]models.EarningsRecord, 0, len(records))
	for _, r := range records {
		if filter != "" && !strings.EqualFold(string(r.SurpriseType), filter) {
			continue
		}
		if minSurprise != 0 && math.Abs(r.EarningsSurprisePct) < minSurprise {
			continue
		}
		out = append(out, r)
	}
	return out
}
