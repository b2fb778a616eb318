package main

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"chainopt/internal/api"
	"chainopt/internal/config"
	"chainopt/internal/metrics"
)

func main() {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(os.Getenv("CHAINOPT_CONFIG"))
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	srv, err := api.NewServer(cfg, log)
	if err != nil {
		log.Fatal("failed to init server", zap.Error(err))
	}
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	// Optimization
	mux.HandleFunc("/api/v1/optimize/inventory", srv.OptimizeInventoryHandler)
	mux.HandleFunc("/api/v1/optimize/routing", srv.OptimizeRoutingHandler)

	// Batch evaluation
	mux.HandleFunc("/api/v1/batch/inventory", srv.BatchInventoryHandler)
	mux.HandleFunc("/api/v1/batch/routing", srv.BatchRoutingHandler)

	// Engine defaults, run history, completion events
	mux.HandleFunc("/api/v1/engine/config", srv.EngineConfigHandler)
	mux.HandleFunc("/api/v1/runs", srv.RunsHandler)
	mux.HandleFunc("/api/v1/events/stream", srv.EventsStreamHandler)

	// Health + metrics
	mux.HandleFunc("/healthz", srv.HealthHandler)
	mux.HandleFunc("/readyz", srv.ReadyHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	handler := instrument(log, rateLimit(cfg.Server, mux))

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("API listening", zap.String("addr", cfg.Server.Addr))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	if os.Getenv("LOG_DEV") != "" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

// statusRecorder captures the response code for logging/metrics and keeps
// Flush working for the SSE stream.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if fl, ok := r.ResponseWriter.(http.Flusher); ok {
		fl.Flush()
	}
}

func instrument(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		dur := time.Since(start)
		status := strconv.Itoa(rec.status)
		metrics.HTTPRequests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(dur.Seconds())
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", dur),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// rateLimit applies a per-client token bucket to /api/ paths.
func rateLimit(cfg config.Server, next http.Handler) http.Handler {
	if cfg.RateLimitRPS <= 0 {
		return next
	}
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
			limiters[key] = l
		}
		return l
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if !limiterFor(host).Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
