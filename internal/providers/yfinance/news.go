package yfinance

import (
	"context"
	"fmt"

	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

// CompanyNews returns recent headlines for ticker from the search API,
// in the order Yahoo ranks them.
func (p *Provider) CompanyNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	symbol := utils.ToYahooSymbol(ticker)

	var resp yfSearchResponse
	if err := p.client.GetJSON(ctx, providerName, p.searchQuery(symbol, p.newsCount), &resp); err != nil {
		return nil, fmt.Errorf("yfinance news %s: %w", symbol, err)
	}

	items := make([]models.NewsItem, 0, len(resp.News))
	for _, n := range resp.News {
		items = append(items, models.NewsItem(n))
	}
	return items, nil
}
