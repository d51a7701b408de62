// Package yfinance implements the Yahoo Finance data provider.
// It scrapes the public earnings calendar for per-ticker earnings history
// and reads headlines from the v1 search API.
//
// Yahoo Finance is a free, no-API-key provider.
package yfinance

import (
	"context"
	"fmt"
	"net/url"

	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
)

const providerName = "yfinance"

// Default upstream endpoints.
const (
	DefaultCalendarURL = "https://finance.yahoo.com/calendar/earnings"
	DefaultSearchURL   = "https://query1.finance.yahoo.com/v1/finance/search"
)

// Provider implements provider.Provider, provider.EarningsSource and
// provider.NewsSource for Yahoo Finance.
type Provider struct {
	provider.BaseProvider

	client      *infra.Client
	calendarURL string
	searchURL   string
	historySize int
	newsCount   int
}

// Option configures the Provider.
type Option func(*Provider)

// WithCalendarURL overrides the earnings calendar page URL.
func WithCalendarURL(u string) Option {
	return func(p *Provider) { p.calendarURL = u }
}

// WithSearchURL overrides the search API URL.
func WithSearchURL(u string) Option {
	return func(p *Provider) { p.searchURL = u }
}

// WithHistorySize sets how many calendar rows are requested per ticker.
func WithHistorySize(n int) Option {
	return func(p *Provider) { p.historySize = n }
}

// WithNewsCount sets how many headlines are requested per ticker.
func WithNewsCount(n int) Option {
	return func(p *Provider) { p.newsCount = n }
}

// New creates a Yahoo Finance provider that issues requests through client.
func New(client *infra.Client, opts ...Option) *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Yahoo Finance - earnings calendar and company news",
			"https://finance.yahoo.com",
		),
		client:      client,
		calendarURL: DefaultCalendarURL,
		searchURL:   DefaultSearchURL,
		historySize: 25,
		newsCount:   20,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping checks connectivity to Yahoo Finance.
func (p *Provider) Ping(ctx context.Context) error {
	var resp yfSearchResponse
	if err := p.client.GetJSON(ctx, providerName, p.searchQuery("AAPL", 0), &resp); err != nil {
		return fmt.Errorf("yfinance ping: %w", err)
	}
	return nil
}

// --- Shared helpers ---

func (p *Provider) searchQuery(symbol string, newsCount int) string {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("quotesCount", "0")
	q.Set("newsCount", fmt.Sprint(newsCount))
	return p.searchURL + "?" + q.Encode()
}

func (p *Provider) calendarQuery(symbol string) string {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("offset", "0")
	q.Set("size", fmt.Sprint(p.historySize))
	return p.calendarURL + "?" + q.Encode()
}
