// Package observability provides structured logging, Prometheus metrics,
// health checks, and graceful shutdown for the Rally API.
//
// Logging is JSON via stdlib slog:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("user_id", id).Info("user registered")
//
// Metrics are registered on a dedicated registry and exposed via
// MetricsHandler; HTTPMetricsMiddleware instruments every request.
//
// HealthChecker serves /health/live (process up) and /health/ready
// (storage reachable). ShutdownManager drains the HTTP server on
// SIGINT/SIGTERM and then closes registered resources.
package observability
