package services

import (
	"context"
	"fmt"
	"time"

	"bioportal/internal/core/ports"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusDegraded  HealthStatus = "degraded"
)

// ComponentHealth represents the health of a specific component
type ComponentHealth struct {
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Latency   string       `json:"latency,omitempty"`
	CheckedAt time.Time    `json:"checked_at"`
}

// HealthReport represents the overall health report
type HealthReport struct {
	Status     HealthStatus               `json:"status"`
	Version    string                     `json:"version"`
	CheckedAt  time.Time                  `json:"checked_at"`
	Components map[string]ComponentHealth `json:"components"`
}

type HealthService struct {
	version  string
	critical []ports.HealthChecker
	optional []ports.HealthChecker
}

// NewHealthService builds a health service. A failing critical checker makes
// the portal unhealthy, a failing optional one only degraded.
func NewHealthService(version string, critical []ports.HealthChecker, optional ...ports.HealthChecker) *HealthService {
	if version == "" {
		version = "0.0.1"
	}
	return &HealthService{
		version:  version,
		critical: critical,
		optional: optional,
	}
}

func (s *HealthService) CheckHealth(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Status:     HealthStatusHealthy,
		Version:    s.version,
		CheckedAt:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	for _, c := range s.critical {
		h := check(ctx, c)
		report.Components[c.Name()] = h
		if h.Status != HealthStatusHealthy {
			report.Status = HealthStatusUnhealthy
		}
	}

	for _, c := range s.optional {
		h := check(ctx, c)
		report.Components[c.Name()] = h
		if h.Status != HealthStatusHealthy && report.Status == HealthStatusHealthy {
			report.Status = HealthStatusDegraded
		}
	}

	return report
}

func check(ctx context.Context, c ports.HealthChecker) ComponentHealth {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:    HealthStatusUnhealthy,
			Message:   fmt.Sprintf("%s check failed: %v", c.Name(), err),
			Latency:   time.Since(start).String(),
			CheckedAt: time.Now(),
		}
	}

	return ComponentHealth{
		Status:    HealthStatusHealthy,
		Latency:   time.Since(start).String(),
		CheckedAt: time.Now(),
	}
}

// SimpleHealthCheck returns a simple health status for load balancers
func (s *HealthService) SimpleHealthCheck(ctx context.Context) (string, int) {
	report := s.CheckHealth(ctx)

	switch report.Status {
	case HealthStatusHealthy:
		return "ok", 200
	case HealthStatusDegraded:
		return "degraded", 200
	default:
		return "unhealthy", 503
	}
}
