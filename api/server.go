// Package api provides the HTTP REST API server for the earnings tracker.
//
// It exposes recent S&P 500 earnings surprises, per-ticker headline
// sentiment, a health check and Prometheus metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/seenimoa/earningstracker/internal/config"
	"github.com/seenimoa/earningstracker/internal/metrics"
	"github.com/seenimoa/earningstracker/internal/tracker"
	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

// Tracker is the query surface the handlers need.
type Tracker interface {
	RecentEarnings(ctx context.Context, windowDays int) []models.EarningsRecord
	Sentiment(ctx context.Context, ticker string, limit int) models.SentimentReport
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	tracker Tracker
	log     *zap.Logger
	metrics *metrics.Manager
	version string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMetrics records request metrics on m and serves them at /metrics.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) { s.metrics = m }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, t Tracker, opts ...Option) *Server {
	srv := &Server{
		cfg:     cfg,
		tracker: t,
		log:     zap.NewNop(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(srv)
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Addr returns the listen address from the API config.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.API.Host, strconv.Itoa(s.cfg.API.Port))
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) ListenAndServe() error {
	httpSrv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api server listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.requestMetrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/earnings", s.handleEarnings)
	r.Get("/sentiment/{ticker}", s.handleSentiment)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	return r
}

// APIResponse is the standard JSON envelope for health and error bodies.
// Data endpoints return their payload bare.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":        "ok",
			"version":       s.version,
			"market_status": utils.MarketStatus(now),
			"time_et":       utils.FormatDateTimeET(now),
		},
	})
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var minSurprise float64
	if raw := q.Get("min_surprise"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusUnprocessableEntity, "min_surprise must be a number")
			return
		}
		minSurprise = v
	}

	records := s.tracker.RecentEarnings(r.Context(), s.cfg.Earnings.WindowDays)
	records = tracker.FilterEarnings(records, q.Get("filter"), minSurprise)

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	writeJSON(w, http.StatusOK, s.tracker.Sentiment(r.Context(), ticker, s.cfg.News.Limit))
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to write JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
