package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/swole-ai/backend/internal/database"
)

const healthCheckTimeout = 5 * time.Second

// Pinger reports whether an upstream answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReport is the result of a health check
type HealthReport struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthService checks the service's collaborators
type HealthService struct {
	db      *gorm.DB
	redis   *redis.Client
	llm     *LLMService
	catalog Pinger
}

// NewHealthService creates a health checker; redis and catalog may be nil
func NewHealthService(db *gorm.DB, redisClient *redis.Client, llm *LLMService, catalog Pinger) *HealthService {
	return &HealthService{db: db, redis: redisClient, llm: llm, catalog: catalog}
}

// Check runs all probes concurrently. The database is the only hard
// dependency; everything else only degrades the report.
func (h *HealthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var dbStatus, redisStatus, catalogStatus string

	var eg errgroup.Group
	eg.Go(func() error {
		dbStatus = "connected"
		if err := database.HealthCheck(ctx, h.db); err != nil {
			dbStatus = "error"
		}
		return nil
	})
	eg.Go(func() error {
		switch {
		case h.redis == nil:
			redisStatus = "disabled"
		case h.redis.Ping(ctx).Err() != nil:
			redisStatus = "error"
		default:
			redisStatus = "connected"
		}
		return nil
	})
	eg.Go(func() error {
		switch {
		case h.catalog == nil:
			catalogStatus = "disabled"
		case h.catalog.Ping(ctx) != nil:
			catalogStatus = "unreachable"
		default:
			catalogStatus = "accessible"
		}
		return nil
	})
	_ = eg.Wait()

	llmStatus := "not configured"
	if h.llm != nil && h.llm.Configured() {
		llmStatus = "configured"
	}

	report := HealthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services: map[string]string{
			"database": dbStatus,
			"redis":    redisStatus,
			"llm":      llmStatus,
			"catalog":  catalogStatus,
		},
	}
	switch {
	case dbStatus != "connected":
		report.Status = "unhealthy"
	case redisStatus == "error" || catalogStatus == "unreachable" || llmStatus != "configured":
		report.Status = "degraded"
	}
	return report
}
