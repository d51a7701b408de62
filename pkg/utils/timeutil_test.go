package utils

import (
	"testing"
	"time"
)

func TestMarketOpenClose(t *testing.T) {
	date := time.Date(2026, 2, 18, 12, 0, 0, 0, ET)

	open := MarketOpenTime(date)
	if open.Hour() != 9 || open.Minute() != 30 {
		t.Errorf("MarketOpenTime = %v, want 09:30", open)
	}

	close := MarketCloseTime(date)
	if close.Hour() != 16 || close.Minute() != 0 {
		t.Errorf("MarketCloseTime = %v, want 16:00", close)
	}
}

func TestIsTradingDay(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"wednesday", time.Date(2026, 2, 18, 10, 0, 0, 0, ET), true},
		{"saturday", time.Date(2026, 2, 21, 10, 0, 0, 0, ET), false},
		{"thanksgiving", time.Date(2026, 11, 26, 10, 0, 0, 0, ET), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTradingDay(tt.date); got != tt.want {
				t.Errorf("IsTradingDay(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestMarketStatus(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"early morning", time.Date(2026, 2, 18, 3, 0, 0, 0, ET), "CLOSED"},
		{"pre-market", time.Date(2026, 2, 18, 8, 0, 0, 0, ET), "PRE-MARKET"},
		{"open", time.Date(2026, 2, 18, 9, 30, 0, 0, ET), "OPEN"},
		{"after hours", time.Date(2026, 2, 18, 16, 0, 0, 0, ET), "AFTER-HOURS"},
		{"weekend", time.Date(2026, 2, 21, 11, 0, 0, 0, ET), "CLOSED (Weekend)"},
		{"holiday", time.Date(2026, 12, 25, 11, 0, 0, 0, ET), "CLOSED (Christmas Day)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketStatus(tt.at); got != tt.want {
				t.Errorf("MarketStatus(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestFormatDateTimeET(t *testing.T) {
	ts := time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC)
	got := FormatDateTimeET(ts)
	if got != "2026-07-01 14:00:00 EDT" && got != "2026-07-01 13:00:00 EST" {
		t.Errorf("FormatDateTimeET = %q", got)
	}
}
