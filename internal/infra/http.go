// Package infra provides shared infrastructure used by the upstream data
// providers: an instrumented HTTP client and response decoding helpers.
package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"

	"github.com/seenimoa/earningstracker/internal/metrics"
	"github.com/seenimoa/earningstracker/internal/tracing"
)

// DefaultTimeout bounds a single upstream request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// Client performs GET requests against upstream data sources.
type Client struct {
	httpClient *http.Client
	userAgent  string
	metrics    *metrics.Manager
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMetrics records per-source request counts and latency on m.
func WithMetrics(m *metrics.Manager) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates an upstream HTTP client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "earningstracker",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body.
// source names the upstream for metrics and tracing. Responses with a
// status of 400 or above are returned as *ErrHTTP.
// The caller is responsible for closing the returned ReadCloser.
func (c *Client) Get(ctx context.Context, source, url string, headers map[string]string) (body io.ReadCloser, err error) {
	ctx, span := tracing.Start(ctx, "upstream.get",
		attribute.String("upstream.source", source),
		attribute.String("http.url", url),
	)
	start := time.Now()
	defer func() {
		c.metrics.RecordUpstream(source, err, time.Since(start))
		tracing.End(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Set default headers.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	// Override/add custom headers.
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}

	return resp.Body, nil
}

// GetJSON performs a GET request and decodes the JSON response into dest.
func (c *Client) GetJSON(ctx context.Context, source, url string, dest any) error {
	body, err := c.Get(ctx, source, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// GetDocument performs a GET request and parses the HTML response.
func (c *Client) GetDocument(ctx context.Context, source, url string) (*goquery.Document, error) {
	body, err := c.Get(ctx, source, url, map[string]string{"Accept": "text/html"})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
