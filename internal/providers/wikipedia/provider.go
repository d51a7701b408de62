// Package wikipedia implements the S&P 500 constituent list provider.
// It scrapes the constituents table from the Wikipedia article
// "List of S&P 500 companies".
package wikipedia

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
)

const providerName = "wikipedia"

// DefaultURL is the constituents article.
const DefaultURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// Provider implements provider.Provider and provider.UniverseSource.
type Provider struct {
	provider.BaseProvider

	client *infra.Client
	url    string
}

// Option configures the Provider.
type Option func(*Provider)

// WithURL overrides the constituents page URL.
func WithURL(u string) Option {
	return func(p *Provider) { p.url = u }
}

// New creates a Wikipedia universe provider.
func New(client *infra.Client, opts ...Option) *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Wikipedia - S&P 500 constituent list",
			"https://en.wikipedia.org",
		),
		client: client,
		url:    DefaultURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping fetches the constituents page.
func (p *Provider) Ping(ctx context.Context) error {
	body, err := p.client.Get(ctx, providerName, p.url, nil)
	if err != nil {
		return fmt.Errorf("wikipedia ping: %w", err)
	}
	return body.Close()
}

// Tickers returns the S&P 500 symbols in Yahoo form (BRK.B becomes BRK-B),
// sorted and de-duplicated.
func (p *Provider) Tickers(ctx context.Context) ([]string, error) {
	doc, err := p.client.GetDocument(ctx, providerName, p.url)
	if err != nil {
		return nil, fmt.Errorf("wikipedia constituents: %w", err)
	}
	tickers, err := parseConstituents(doc)
	if err != nil {
		return nil, fmt.Errorf("wikipedia constituents: %w", err)
	}
	return tickers, nil
}

// parseConstituents reads the "Symbol" column of the constituents table.
// The table is matched by id first and by header text as a fallback.
func parseConstituents(doc *goquery.Document) ([]string, error) {
	table := doc.Find("table#constituents").First()
	if table.Length() == 0 {
		doc.Find("table.wikitable").EachWithBreak(func(_ int, t *goquery.Selection) bool {
			if symbolColumn(t) >= 0 {
				table = t
				return false
			}
			return true
		})
	}
	if table.Length() == 0 {
		return nil, fmt.Errorf("constituents table not found")
	}

	col := symbolColumn(table)
	if col < 0 {
		return nil, fmt.Errorf("symbol column not found")
	}

	seen := make(map[string]struct{})
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= col {
			return
		}
		sym := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(cells.Eq(col).Text())), ".", "-")
		if sym != "" {
			seen[sym] = struct{}{}
		}
	})
	if len(seen) == 0 {
		return nil, fmt.Errorf("constituents table is empty")
	}

	tickers := make([]string, 0, len(seen))
	for sym := range seen {
		tickers = append(tickers, sym)
	}
	sort.Strings(tickers)
	return tickers, nil
}

func symbolColumn(table *goquery.Selection) int {
	col := -1
	table.Find("tr").First().Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
		switch strings.ToLower(strings.TrimSpace(th.Text())) {
		case "symbol", "ticker", "ticker symbol":
			col = i
			return false
		}
		return true
	})
	return col
}
