package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pageza/swole-ai/backend/config"
	"github.com/pageza/swole-ai/backend/internal/api"
	"github.com/pageza/swole-ai/backend/internal/middleware"
	"github.com/pageza/swole-ai/backend/internal/repository"
	"github.com/pageza/swole-ai/backend/internal/service"
)

// Deps are the external clients the server is built on. Redis and S3 may be nil.
type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	S3    *s3.Client
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New wires repositories, services and routes
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.CORS(cfg.Server.AllowedOrigins))
	router.NoRoute(middleware.NotFound())

	svc, err := buildServices(cfg, deps)
	if err != nil {
		return nil, err
	}
	api.RegisterRoutes(router, svc)

	return &Server{
		cfg:    cfg,
		router: router,
		http: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
	}, nil
}

func buildServices(cfg *config.Config, deps Deps) (api.Services, error) {
	users := repository.NewUserRepository(deps.DB)
	workouts := repository.NewWorkoutRepository(deps.DB)

	wger := service.NewWgerClient(cfg.Catalog.BaseURL)
	var cache service.CategoryCache
	if deps.Redis != nil {
		cache = service.NewRedisCategoryCache(deps.Redis)
	}
	candidates := service.NewCatalogGateway(wger, cfg.Catalog, cache)

	media, err := service.NewMediaGateway(wger, cfg.Catalog.MediaTimeout, cfg.Catalog.MediaCacheSize)
	if err != nil {
		return api.Services{}, err
	}

	llm := service.NewLLMService(cfg.LLM)
	var completer service.Completer
	if llm.Configured() {
		completer = llm
	} else {
		log.Warn().Msg("LLM API key not configured, workouts will use the fallback planner")
	}

	var images service.ImageStore
	if deps.S3 != nil && cfg.S3.Enabled() {
		images = service.NewS3ImageStore(deps.S3, cfg.S3)
	}

	synthesizer := service.NewPlanSynthesizer(completer, media, service.NewFallbackSynthesizer(nil))
	advisor := service.NewFeedbackAdvisor(completer)

	svc := api.Services{
		Users:    service.NewUserService(users),
		Workouts: service.NewWorkoutService(users, workouts, candidates, synthesizer, advisor),
		Chat:     service.NewChatService(llm, images),
		Health:   service.NewHealthService(deps.DB, deps.Redis, llm, wger),
	}
	if deps.Redis != nil {
		limiter := middleware.NewGenerationRateLimiter(deps.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window)
		svc.GenerateLimit = limiter.RateLimitMiddleware()
	}
	return svc, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server within the configured timeout
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
