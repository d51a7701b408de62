// Package fmp implements the Financial Modeling Prep (FMP) data provider.
// FMP serves the S&P 500 constituent list, per-symbol earnings history and
// company news over a REST API with API key authentication.
//
// Free tier: 250 requests/day, so a full index scan needs a paid plan.
// Docs: https://financialmodelingprep.com/developer/docs
package fmp

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

const providerName = "fmp"

// DefaultBaseURL is the v3 REST endpoint.
const DefaultBaseURL = "https://financialmodelingprep.com/api/v3"

// Provider implements provider.Provider, provider.UniverseSource,
// provider.EarningsSource and provider.NewsSource for FMP.
type Provider struct {
	provider.BaseProvider

	client      *infra.Client
	baseURL     string
	apiKey      string
	historySize int
	newsLimit   int
}

// Option configures the Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHistorySize sets how many earnings rows are requested per symbol.
func WithHistorySize(n int) Option {
	return func(p *Provider) { p.historySize = n }
}

// WithNewsLimit sets how many articles are requested per symbol.
func WithNewsLimit(n int) Option {
	return func(p *Provider) { p.newsLimit = n }
}

// New creates an FMP provider authenticated with apiKey.
func New(client *infra.Client, apiKey string, opts ...Option) *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Financial Modeling Prep - constituents, earnings history and news",
			"https://financialmodelingprep.com",
		),
		client:      client,
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		historySize: 25,
		newsLimit:   20,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping checks connectivity and the API key.
func (p *Provider) Ping(ctx context.Context) error {
	var quotes []map[string]any
	if err := p.getJSON(ctx, "/quote/AAPL", nil, &quotes); err != nil {
		return fmt.Errorf("fmp ping: %w", err)
	}
	return nil
}

// Tickers returns the S&P 500 constituents in Yahoo-style form, sorted and
// de-duplicated.
func (p *Provider) Tickers(ctx context.Context) ([]string, error) {
	var rows []fmpConstituent
	if err := p.getJSON(ctx, "/sp500_constituent", nil, &rows); err != nil {
		return nil, fmt.Errorf("fmp constituents: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if sym := utils.ToYahooSymbol(r.Symbol); sym != "" {
			seen[sym] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("fmp constituents: empty response")
	}

	tickers := make([]string, 0, len(seen))
	for sym := range seen {
		tickers = append(tickers, sym)
	}
	sort.Strings(tickers)
	return tickers, nil
}

// EarningsHistory returns reported and scheduled quarters for ticker, most
// recent first. FMP publishes dates only, so StartDate is set.
func (p *Provider) EarningsHistory(ctx context.Context, ticker string) ([]models.EarningsEvent, error) {
	symbol := utils.ToYahooSymbol(ticker)

	q := url.Values{}
	q.Set("limit", fmt.Sprint(p.historySize))

	var rows []fmpEarnings
	if err := p.getJSON(ctx, "/historical/earning_calendar/"+url.PathEscape(symbol), q, &rows); err != nil {
		return nil, fmt.Errorf("fmp earnings %s: %w", symbol, err)
	}

	events := make([]models.EarningsEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, models.EarningsEvent{
			Ticker:      ticker,
			StartDate:   r.Date,
			EPSEstimate: r.EPSEstimated,
			EPSActual:   r.EPS,
		})
	}
	return events, nil
}

// CompanyNews returns recent articles for ticker, newest first. Fields are
// passed through as FMP returns them, with "publisher" added from "site".
func (p *Provider) CompanyNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	symbol := utils.ToYahooSymbol(ticker)

	q := url.Values{}
	q.Set("tickers", symbol)
	q.Set("limit", fmt.Sprint(p.newsLimit))

	var rows []map[string]any
	if err := p.getJSON(ctx, "/stock_news", q, &rows); err != nil {
		return nil, fmt.Errorf("fmp news %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(rows))
	for _, r := range rows {
		item := models.NewsItem(r)
		if site, ok := r["site"]; ok {
			if _, has := item["publisher"]; !has {
				item["publisher"] = site
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// --- Shared helpers ---

// getJSON performs a GET against path with the API key appended.
func (p *Provider) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("apikey", p.apiKey)

	return p.client.GetJSON(ctx, providerName, p.baseURL+path+"?"+q.Encode(), dest)
}
