package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/swole-ai/backend/internal/service"
)

// Version is reported by the root endpoint
const Version = "v1.0.0"

// HealthChecker probes the service's collaborators
type HealthChecker interface {
	Check(ctx context.Context) service.HealthReport
}

// Root describes the API
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Swole AI Trainer API",
		"version":   Version,
		"exercises": "wger",
		"health":    "/api/health",
	})
}

// HealthCheck returns the health status of the API. Only an unreachable
// database makes it answer 503.
func HealthCheck(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := checker.Check(c.Request.Context())
		status := http.StatusOK
		if report.Status == "unhealthy" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}
