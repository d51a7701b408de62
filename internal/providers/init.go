// Package providers constructs the concrete data providers and registers
// them with a provider registry.
package providers

import (
	"github.com/seenimoa/earningstracker/internal/config"
	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/internal/providers/fmp"
	"github.com/seenimoa/earningstracker/internal/providers/wikipedia"
	"github.com/seenimoa/earningstracker/internal/providers/yahoorss"
	"github.com/seenimoa/earningstracker/internal/providers/yfinance"
)

// Provider names as registered.
const (
	Wikipedia = "wikipedia"
	YFinance  = "yfinance"
	YahooRSS  = "yahoorss"
	FMP       = "fmp"
)

// NewsProviderName maps the news.source config value to a provider name.
func NewsProviderName(source string) string {
	switch source {
	case "rss":
		return YahooRSS
	case "fmp":
		return FMP
	default:
		return YFinance
	}
}

// RegisterAllTo creates every provider against the shared client and
// registers it with reg. FMP is registered only when an API key is
// configured.
func RegisterAllTo(reg *provider.Registry, client *infra.Client, cfg *config.Config) error {
	all := []provider.Provider{
		wikipedia.New(client, wikipedia.WithURL(cfg.Upstream.UniverseURL)),
		yfinance.New(client,
			yfinance.WithCalendarURL(cfg.Upstream.CalendarURL),
			yfinance.WithSearchURL(cfg.Upstream.SearchURL),
			yfinance.WithHistorySize(cfg.Earnings.HistorySize),
			yfinance.WithNewsCount(max(cfg.News.Limit, 1)),
		),
		yahoorss.New(client, yahoorss.WithURL(cfg.Upstream.RSSURL)),
	}
	if cfg.Upstream.FMPAPIKey != "" {
		all = append(all, fmp.New(client, cfg.Upstream.FMPAPIKey,
			fmp.WithBaseURL(cfg.Upstream.FMPURL),
			fmp.WithHistorySize(cfg.Earnings.HistorySize),
			fmp.WithNewsLimit(max(cfg.News.Limit, 1)),
		))
	}
	for _, p := range all {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}
