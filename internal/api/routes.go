package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/swole-ai/backend/internal/service"
)

// Services bundles what the routes depend on
type Services struct {
	Users    service.IUserService
	Workouts service.IWorkoutService
	Chat     service.IChatService
	Health   HealthChecker
	// GenerateLimit guards workout generation; nil disables it
	GenerateLimit gin.HandlerFunc
}

// RegisterRoutes registers all API routes. Resource routes are served under
// both /api and /api/v1.
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/", Root)
	router.GET("/health", HealthCheck(svc.Health))
	router.GET("/api/health", HealthCheck(svc.Health))

	users := NewUserHandler(svc.Users, svc.Workouts)
	workouts := NewWorkoutHandler(svc.Workouts, svc.GenerateLimit)
	chat := NewChatHandler(svc.Chat)
	for _, group := range []*gin.RouterGroup{router.Group("/api"), router.Group("/api/v1")} {
		users.RegisterRoutes(group)
		workouts.RegisterRoutes(group)
		chat.RegisterRoutes(group)
	}
}
