// health.go - Health monitoring for the admission daemon.

package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents the health status of a component.
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents the health of a specific component.
type ComponentHealth struct {
	Name      string       `json:"name"`
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message"`
	LastCheck time.Time    `json:"last_check"`
}

// SystemHealth represents the overall daemon health.
type SystemHealth struct {
	OverallStatus HealthStatus      `json:"overall_status"`
	Timestamp     time.Time         `json:"timestamp"`
	Components    []ComponentHealth `json:"components"`
	Uptime        time.Duration     `json:"uptime"`
}

// HealthChecker runs registered component probes on demand.
type HealthChecker struct {
	mu        sync.RWMutex
	checkers  map[string]func() error
	startTime time.Time
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checkers:  make(map[string]func() error),
		startTime: time.Now(),
	}
}

// RegisterComponent registers a health probe for a component.
func (hc *HealthChecker) RegisterComponent(name string, checker func() error) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checkers[name] = checker
}

// Check runs all registered probes and aggregates the result.
func (hc *HealthChecker) Check() SystemHealth {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	health := SystemHealth{
		OverallStatus: Healthy,
		Timestamp:     time.Now(),
		Uptime:        time.Since(hc.startTime),
	}
	for name, checker := range hc.checkers {
		component := ComponentHealth{
			Name:      name,
			Status:    Healthy,
			Message:   "ok",
			LastCheck: time.Now(),
		}
		if err := checker(); err != nil {
			component.Status = Unhealthy
			component.Message = err.Error()
			health.OverallStatus = Unhealthy
		}
		health.Components = append(health.Components, component)
	}
	return health
}

// Handler serves the health endpoint.
func (hc *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		health := hc.Check()
		w.Header().Set("Content-Type", "application/json")
		if health.OverallStatus != Healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})
}
