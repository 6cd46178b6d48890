// Package main is the entry point for the token risk analyzer, a backend
// service that turns a token address or launchpad page URL into an assembled
// market and risk report.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourorg/token-risk-api/internal/analyze"
	"github.com/yourorg/token-risk-api/internal/apperr"
	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/export"
	"github.com/yourorg/token-risk-api/internal/otel"
	"github.com/yourorg/token-risk-api/internal/report"
	"github.com/yourorg/token-risk-api/internal/security"
)

const version = "1.0.0"

// startTime records when the service was initialized for uptime reporting
var startTime = time.Now()

// Server holds the HTTP server and everything a request handler needs.
type Server struct {
	config   config.Config
	analyzer *analyze.Analyzer
	server   *http.Server
	metrics  *serverMetrics
	limiter  *rate.Limiter
	exporter *export.Exporter
	signer   *security.Signer
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	riskLevels      *prometheus.CounterVec
}

// registerMetrics sets up Prometheus metrics collection
func registerMetrics() *serverMetrics {
	m := &serverMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyze_requests_total",
				Help: "Total number of analyze requests processed",
			},
			[]string{"status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analyze_request_duration_seconds",
				Help:    "Analyze request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		riskLevels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyze_risk_levels_total",
				Help: "Reports produced per relayed risk level",
			},
			[]string{"level"},
		),
	}

	prometheus.MustRegister(m.requestCounter, m.requestDuration, m.riskLevels)
	return m
}

// main is the entry point for the application
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	setupLogging()

	cfg := config.Load()

	shutdownTracer := otel.InitTracer(cfg.OtelEndpoint)
	defer shutdownTracer()

	server := NewServer(cfg, analyze.New(cfg))
	server.Start()
}

// setupLogging configures the logging for the application
func setupLogging() {
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))

	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// NewServer creates a new server instance wired to the analyze pipeline.
func NewServer(cfg config.Config, analyzer *analyze.Analyzer) *Server {
	server := &Server{
		config:   cfg,
		analyzer: analyzer,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		exporter: export.New(export.Config{
			WebhookURL: cfg.ExportWebhookURL,
			APIKey:     cfg.ExportWebhookKey,
			BatchSize:  cfg.ExportBatchSize,
			Interval:   cfg.ExportInterval,
		}),
	}

	if cfg.EnableMetrics {
		server.metrics = registerMetrics()
	}

	if cfg.SignReports {
		signer, err := security.NewSigner()
		if err != nil {
			logrus.Warnf("Failed to initialize report signer: %v", err)
		} else {
			server.signer = signer
		}
	}

	logrus.WithFields(logrus.Fields{
		"port":             cfg.Port,
		"launchpad_domain": cfg.LaunchpadDomain,
		"enforce_suffix":   cfg.EnforceSuffix,
		"accept_url":       cfg.AcceptURL,
		"accept_direct":    cfg.AcceptDirectAddress,
		"ai_enabled":       cfg.OpenAIKey != "",
		"metrics":          cfg.EnableMetrics,
		"breaker":          cfg.EnableBreaker,
	}).Info("Server initialized")

	return server
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/status", s.handleStatus)

	s.server = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	s.exporter.Close()
	logrus.Info("Server stopped")
}

// analyzeRequest is the inbound request body. Older clients send {url}
// instead of {input}; both are accepted.
type analyzeRequest struct {
	Input string `json:"input"`
	URL   string `json:"url"`
}

// handleAnalyze processes POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.limiter.Allow() {
		s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var request analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := strings.TrimSpace(request.Input)
	if input == "" {
		input = strings.TrimSpace(request.URL)
	}
	if input == "" {
		s.errorResponse(w, http.StatusBadRequest, "missing input")
		return
	}

	rep, err := s.analyzer.Analyze(r.Context(), input)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			logrus.Errorf("Analyze failed: %v", err)
		} else {
			logrus.Debugf("Analyze rejected (%d): %v", status, err)
		}
		s.observe("error", start)
		s.errorResponse(w, status, apperr.Message(err))
		return
	}

	envelope := report.NewEnvelope(*rep)
	if s.signer != nil {
		if signature, err := s.signer.Sign([]byte(envelope.Summary)); err == nil {
			envelope.Signature = signature
			envelope.PublicKey = s.signer.PublicKey()
		}
	}

	s.exporter.Add(envelope)
	s.observe("success", start)
	if s.metrics != nil {
		s.metrics.riskLevels.WithLabelValues(string(rep.Risk.Level)).Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(envelope)
}

// errorResponse returns the short caller-facing error envelope.
func (s *Server) errorResponse(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":    false,
		"error": errorMsg,
	})
}

// observe records request metrics when metrics are enabled.
func (s *Server) observe(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.requestCounter.WithLabelValues(status).Inc()
	s.metrics.requestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "OK",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleMetrics exposes Prometheus metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.config.EnableMetrics {
		http.Error(w, "Metrics disabled", http.StatusServiceUnavailable)
		return
	}
	promhttp.Handler().ServeHTTP(w, r)
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "operational",
		"uptime":  time.Since(startTime).String(),
		"version": version,
		"configuration": map[string]interface{}{
			"launchpad_domain":      s.config.LaunchpadDomain,
			"enforce_suffix":        s.config.EnforceSuffix,
			"accept_url":            s.config.AcceptURL,
			"accept_direct_address": s.config.AcceptDirectAddress,
			"ai_enabled":            s.config.OpenAIKey != "",
			"report_export":         s.exporter.Enabled(),
			"report_signing":        s.signer != nil,
		},
		"circuit_state": s.analyzer.BreakerState().String(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
