package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rallyhq/rally/pkg/api"
	"github.com/rallyhq/rally/pkg/auth"
	"github.com/rallyhq/rally/pkg/config"
	"github.com/rallyhq/rally/pkg/httputil"
	"github.com/rallyhq/rally/pkg/observability"
	"github.com/rallyhq/rally/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("failed to initialize storage")
		os.Exit(1)
	}
	logger.Infof("Storage initialized (%s)", cfg.Storage.Type)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	var metrics *observability.Metrics
	var registry *prometheus.Registry
	if cfg.Observability.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
		store = storage.NewInstrumentedStore(store, metrics)
	}

	server := api.NewServer(store, hasher, tokens, logger)

	health := observability.NewHealthChecker(store)
	server.Router().HandleFunc("/health/live", health.Liveness).Methods("GET")
	server.Router().HandleFunc("/health/ready", health.Readiness).Methods("GET")

	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
		httputil.CORSMiddleware(cfg.Server.CORSOrigins),
		httputil.ContentTypeMiddleware,
		httputil.MaxBytesMiddleware(cfg.Server.MaxBodyBytes),
	}

	if metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(metrics))
		server.Router().Handle("/metrics", observability.MetricsHandler(registry)).Methods("GET")
	}

	handler := httputil.Chain(middlewares...)(server)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return store.Close()
	})

	go func() {
		logger.Infof("Rally API listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	if err := shutdown.WaitForShutdown(); err != nil {
		os.Exit(1)
	}
}

// openStore builds the configured storage backend and runs migrations for
// SQL backends
func openStore(cfg storage.Config) (storage.Store, error) {
	if cfg.Type == "memory" {
		return storage.NewMemoryStore(), nil
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(context.Background()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
