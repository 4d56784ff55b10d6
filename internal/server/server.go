// Package server exposes rule validation over HTTP: callers post rules and
// rows as JSON and receive the same validation report the CLI produces.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/apkarthik1986/ExcelRuleValidation/internal/engine"
	"github.com/apkarthik1986/ExcelRuleValidation/internal/rule"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	Workers         int
	EnableMetrics   bool
	EnableCORS      bool
	RuleFiles       []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            8080,
		EnableMetrics:   true,
		EnableCORS:      true,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// RuleSetRegistry holds named rule sets preloaded from rule files, served
// for validation by ID.
type RuleSetRegistry struct {
	sets map[string]*rule.Set
	mu   sync.RWMutex
}

// NewRuleSetRegistry creates an empty registry
func NewRuleSetRegistry() *RuleSetRegistry {
	return &RuleSetRegistry{sets: make(map[string]*rule.Set)}
}

// Register adds a rule set under an ID
func (r *RuleSetRegistry) Register(id string, set *rule.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[id] = set
}

// Get retrieves a rule set by ID
func (r *RuleSetRegistry) Get(id string) (*rule.Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, exists := r.sets[id]
	return set, exists
}

// List returns all registered rule set IDs
func (r *RuleSetRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	return ids
}

// Server serves the validation API.
type Server struct {
	config     *Config
	registry   *RuleSetRegistry
	runner     *engine.Runner
	router     *mux.Router
	httpServer *http.Server
	metrics    *metrics
}

type metrics struct {
	requestsTotal *prometheus.CounterVec
	checksTotal   *prometheus.CounterVec
	runDuration   prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xlrv_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xlrv_checks_total",
			Help: "Individual (rule, row) checks evaluated, by outcome.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "xlrv_run_duration_seconds",
			Help:    "Wall time of validation runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(m.requestsTotal, m.checksTotal, m.runDuration)
	return m
}

// New creates a server, loading any configured rule files into the registry.
func New(config *Config, registry *RuleSetRegistry) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if registry == nil {
		registry = NewRuleSetRegistry()
	}

	s := &Server{
		config:   config,
		registry: registry,
		runner:   engine.NewRunner(engine.WithWorkers(config.Workers)),
		router:   mux.NewRouter(),
	}
	if config.EnableMetrics {
		s.metrics = newMetrics()
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.loggingMiddleware)
	if s.config.EnableCORS {
		s.router.Use(corsMiddleware)
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/rules/check", s.handleCheck).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/rulesets", s.handleListRuleSets).Methods(http.MethodGet)
	api.HandleFunc("/operators", s.handleOperators).Methods(http.MethodGet)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.config.EnableMetrics {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the context is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("validation server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
