// Package yahoorss implements a headline source backed by the Yahoo
// Finance per-symbol RSS feed.
package yahoorss

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

const providerName = "yahoorss"

// DefaultURL is the headline feed endpoint.
const DefaultURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"

// defaultPublisher is used when an entry names no author.
const defaultPublisher = "Yahoo Finance"

// Provider implements provider.Provider and provider.NewsSource.
type Provider struct {
	provider.BaseProvider

	client *infra.Client
	url    string
	parser *gofeed.Parser
}

// Option configures the Provider.
type Option func(*Provider)

// WithURL overrides the feed endpoint.
func WithURL(u string) Option {
	return func(p *Provider) { p.url = u }
}

// New creates a Yahoo RSS news provider.
func New(client *infra.Client, opts ...Option) *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Yahoo Finance RSS - per-symbol headline feed",
			"https://finance.yahoo.com",
		),
		client: client,
		url:    DefaultURL,
		parser: gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping fetches the feed for a well-known symbol.
func (p *Provider) Ping(ctx context.Context) error {
	if _, err := p.fetch(ctx, "AAPL"); err != nil {
		return fmt.Errorf("yahoorss ping: %w", err)
	}
	return nil
}

// CompanyNews returns the feed entries for ticker in feed order.
func (p *Provider) CompanyNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	symbol := utils.ToYahooSymbol(ticker)

	feed, err := p.fetch(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoorss news %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, toNewsItem(it))
	}
	return items, nil
}

func (p *Provider) fetch(ctx context.Context, symbol string) (*gofeed.Feed, error) {
	q := url.Values{}
	q.Set("s", symbol)
	q.Set("region", "US")
	q.Set("lang", "en-US")

	body, err := p.client.Get(ctx, providerName, p.url+"?"+q.Encode(),
		map[string]string{"Accept": "application/rss+xml, application/xml, text/xml"})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := p.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse RSS: %w", err)
	}
	return feed, nil
}

// toNewsItem maps a feed entry onto the keys the search API uses, so both
// sources produce interchangeable items.
func toNewsItem(it *gofeed.Item) models.NewsItem {
	n := models.NewsItem{
		"title":     strings.TrimSpace(it.Title),
		"link":      it.Link,
		"publisher": defaultPublisher,
		"summary":   cleanHTML(it.Description),
		"uuid":      it.GUID,
	}
	if it.Author != nil && it.Author.Name != "" {
		n["publisher"] = it.Author.Name
	}
	if it.PublishedParsed != nil {
		n["providerPublishTime"] = it.PublishedParsed.Unix()
	}
	return n
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
