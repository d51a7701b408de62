package yfinance

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

// EarningsHistory scrapes the earnings calendar for ticker and returns one
// event per table row, most recent first as Yahoo lists them.
func (p *Provider) EarningsHistory(ctx context.Context, ticker string) ([]models.EarningsEvent, error) {
	symbol := utils.ToYahooSymbol(ticker)

	doc, err := p.client.GetDocument(ctx, providerName, p.calendarQuery(symbol))
	if err != nil {
		return nil, fmt.Errorf("yfinance earnings %s: %w", symbol, err)
	}

	events, err := parseCalendar(doc, ticker)
	if err != nil {
		return nil, fmt.Errorf("yfinance earnings %s: %w", symbol, err)
	}
	return events, nil
}

// parseCalendar reads the first table whose header carries an
// "Earnings Date" column. Columns are located by header text, so their
// order on the page does not matter.
func parseCalendar(doc *goquery.Document, ticker string) ([]models.EarningsEvent, error) {
	var (
		table *goquery.Selection
		cols  map[string]int
	)
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		idx := headerIndex(t)
		if _, ok := idx[colEarningDate]; ok {
			table, cols = t, idx
			return false
		}
		return true
	})
	if table == nil {
		return nil, fmt.Errorf("earnings table not found")
	}

	var events []models.EarningsEvent
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		ev := models.EarningsEvent{
			Ticker:      ticker,
			EPSEstimate: parseEPS(cell(colEPSEstimate)),
			EPSActual:   parseEPS(cell(colReportedEPS)),
		}
		if ts, hasTime, err := parseCalendarTime(cell(colEarningDate)); err == nil {
			if hasTime {
				ev.StartDateTime = ts.UTC().Format("2006-01-02T15:04:05.000Z")
			} else {
				ev.StartDate = ts.Format("2006-01-02")
			}
		}
		events = append(events, ev)
	})
	return events, nil
}

func headerIndex(table *goquery.Selection) map[string]int {
	idx := make(map[string]int)
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		name := strings.ToLower(strings.Join(strings.Fields(th.Text()), " "))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	})
	return idx
}

// parseEPS returns nil for the placeholders Yahoo uses for unpublished
// figures and for anything that is not a finite number.
func parseEPS(s string) *float64 {
	s = strings.NewReplacer(",", "", "+", "").Replace(strings.TrimSpace(s))
	if s == "" || s == "-" || s == "--" || strings.EqualFold(s, "N/A") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

var calendarLayouts = []struct {
	layout  string
	hasTime bool
}{
	{"Jan 2, 2006, 3 PM", true},
	{"Jan 2, 2006, 3:04 PM", true},
	{"Jan 2, 2006", false},
}

// parseCalendarTime parses values such as "Oct 30, 2025, 4 PM EDT" or
// "Oct 30, 2025 at 4 PM EDT". US Eastern is assumed unless the value ends
// in UTC or GMT. hasTime is false when the cell carried only a date.
func parseCalendarTime(s string) (t time.Time, hasTime bool, err error) {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Replace(s, " at ", ", ", 1)

	loc := utils.ET
	if i := strings.LastIndex(s, " "); i > 0 {
		switch strings.ToUpper(s[i+1:]) {
		case "EDT", "EST", "ET":
			s = s[:i]
		case "UTC", "GMT":
			loc = time.UTC
			s = s[:i]
		}
	}

	for _, l := range calendarLayouts {
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return t, l.hasTime, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized calendar date %q", s)
}
