// Package tracker composes the data providers and the analysis packages
// into the two queries the service answers: recent earnings surprises
// across the index and headline sentiment for one ticker.
//
// Upstream failures never surface as errors from this package. They are
// logged and collapse into empty or partial results.
package tracker

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/earningstracker/internal/analysis/earnings"
	"github.com/seenimoa/earningstracker/internal/analysis/sentiment"
	"github.com/seenimoa/earningstracker/internal/infra"
	"github.com/seenimoa/earningstracker/internal/metrics"
	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/internal/tracing"
	"github.com/seenimoa/earningstracker/pkg/models"
)

// DefaultConcurrency bounds parallel history fetches during a scan.
const DefaultConcurrency = 8

// Service answers earnings and sentiment queries.
type Service struct {
	universe provider.UniverseSource
	earnings provider.EarningsSource
	news     provider.NewsSource

	log         *zap.Logger
	metrics     *metrics.Manager
	timeout     time.Duration
	concurrency int
	now         func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics records scan statistics on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTimeout bounds each individual upstream call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithConcurrency sets how many tickers are fetched at once.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over the given sources.
func New(universe provider.UniverseSource, earningsSrc provider.EarningsSource, news provider.NewsSource, opts ...Option) *Service {
	s := &Service{
		universe:    universe,
		earnings:    earningsSrc,
		news:        news,
		log:         zap.NewNop(),
		timeout:     infra.DefaultTimeout,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}
	return s
}

// NewFromRegistry looks the three sources up by provider name.
func NewFromRegistry(reg *provider.Registry, universeName, earningsName, newsName string, opts ...Option) (*Service, error) {
	u, err := reg.Universe(universeName)
	if err != nil {
		return nil, err
	}
	e, err := reg.Earnings(earningsName)
	if err != nil {
		return nil, err
	}
	n, err := reg.News(newsName)
	if err != nil {
		return nil, err
	}
	return New(u, e, n, opts...), nil
}

// ListTickers returns the index constituents, or an empty slice when the
// universe cannot be loaded.
func (s *Service) ListTickers(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tickers, err := s.universe.Tickers(ctx)
	if err != nil {
		s.log.Warn("ticker universe unavailable", zap.Error(err))
		return []string{}
	}
	return tickers
}

// RecentEarnings scans every constituent for results reported in the last
// windowDays days and returns them sorted by absolute surprise, largest
// first. Tickers whose history cannot be fetched are skipped, as are rows
// without a usable date or EPS pair.
func (s *Service) RecentEarnings(ctx context.Context, windowDays int) []models.EarningsRecord {
	ctx, span := tracing.Start(ctx, "earnings.scan", attribute.Int("earnings.window_days", windowDays))
	defer span.End()

	records := []models.EarningsRecord{}

	tickers := s.ListTickers(ctx)
	if len(tickers) == 0 {
		return records
	}
	start, end := earnings.Window(s.now(), windowDays)

	// Each goroutine owns one slot, so results stay in universe order.
	histories := make([][]models.EarningsEvent, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ticker := range tickers {
		g.Go(func() error {
			histories[i] = s.fetchHistory(gctx, ticker)
			return nil
		})
	}
	_ = g.Wait()

	skipped := 0
	for _, history := range histories {
		for _, ev := range history {
			rec, reason, ok := earnings.BuildRecord(ev, start, end)
			if !ok {
				skipped++
				s.metrics.RecordRecordSkipped(string(reason))
				continue
			}
			records = append(records, rec)
		}
	}
	earnings.SortBySurprise(records)

	s.metrics.RecordRecordsReturned(len(records))
	span.SetAttributes(
		attribute.Int("earnings.tickers", len(tickers)),
		attribute.Int("earnings.records", len(records)),
	)
	s.log.Info("earnings scan complete",
		zap.Int("tickers", len(tickers)),
		zap.Int("records", len(records)),
		zap.Int("rows_skipped", skipped),
		zap.Time("window_start", start),
		zap.Time("window_end", end),
	)
	return records
}

func (s *Service) fetchHistory(ctx context.Context, ticker string) []models.EarningsEvent {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	events, err := s.earnings.EarningsHistory(ctx, ticker)
	if err != nil {
		// Non-critical: one ticker never fails the scan.
		s.log.Debug("earnings history unavailable", zap.String("ticker", ticker), zap.Error(err))
		s.metrics.RecordTickerSkipped()
		return nil
	}
	return events
}

// CompanyNews returns at most limit headlines for ticker in upstream
// order, or an empty slice when the source fails. A negative limit is
// treated as 0.
func (s *Service) CompanyNews(ctx context.Context, ticker string, limit int) []models.NewsItem {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.news.CompanyNews(ctx, ticker)
	if err != nil {
		s.log.Warn("company news unavailable", zap.String("ticker", ticker), zap.Error(err))
		return []models.NewsItem{}
	}

	limit = max(limit, 0)
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items
}

// Sentiment scores the latest limit headlines for ticker.
func (s *Service) Sentiment(ctx context.Context, ticker string, limit int) models.SentimentReport {
	ctx, span := tracing.Start(ctx, "sentiment.report", attribute.String("ticker", ticker))
	defer span.End()

	sum := sentiment.Summarize(s.CompanyNews(ctx, ticker, limit))

	s.log.Debug("sentiment scored",
		zap.String("ticker", ticker),
		zap.String("overall", string(sum.Overall)),
		zap.Int("headlines", len(sum.Headlines)),
	)
	return models.SentimentReport{
		Ticker:           strings.ToUpper(ticker),
		OverallSentiment: sum.Overall,
		Headlines:        sum.Headlines,
	}
}

// FilterEarnings narrows a scan result by surprise type and magnitude.
// See earnings.Filter.
func FilterEarnings(records []models.EarningsRecord, filter string, minSurprise float64) []models.EarningsRecord {
	return earnings.Filter(records, filter, minSurprise)
}
