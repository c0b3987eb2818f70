package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	latency func() time.Duration
	logger  logger.Interface
}

// NewHealthHandler reports the named checks. latency may be nil.
func NewHealthHandler(checks map[string]HealthCheck, latency func() time.Duration, logger logger.Interface) *HealthHandler {
	return &HealthHandler{checks: checks, latency: latency, logger: logger}
}

// Healthz handles GET /healthz. Any failing check turns the response into a
// 503.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warnw("health check failed", "check", name, "error", err)
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := gin.H{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if h.latency != nil {
		body["gateway_latency_ms"] = h.latency().Milliseconds()
	}
	c.JSON(status, body)
}
