package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is the dependency contract for readiness checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports liveness and readiness of the service
type HealthChecker struct {
	store Pinger
}

// NewHealthChecker creates a health checker over the storage dependency
func NewHealthChecker(store Pinger) *HealthChecker {
	return &HealthChecker{store: store}
}

// HealthStatus is the readiness response body
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus describes a single dependency check
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Liveness handles GET /health/live. It always returns 200 while the
// process is able to serve requests.
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Timestamp: time.Now()})
}

// Readiness handles GET /health/ready. It returns 503 when storage is
// unreachable.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}

// Check runs all dependency checks
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       "ok",
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyStatus),
	}

	if h.store != nil {
		dep := DependencyStatus{Status: "ok"}
		if err := h.store.Ping(ctx); err != nil {
			dep.Status = "unavailable"
			dep.Message = err.Error()
			status.Status = "degraded"
		}
		status.Dependencies["storage"] = dep
	}

	return status
}
