package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/swole-ai/backend/internal/service"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// UserHandler serves user profiles and their workout history
type UserHandler struct {
	userService    service.IUserService
	workoutService service.IWorkoutService
}

func NewUserHandler(userService service.IUserService, workoutService service.IWorkoutService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		workoutService: workoutService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:user_id", h.GetUser)
		users.GET("/:user_id/workouts", h.ListWorkouts)
	}
}

// CreateUser stores a new profile
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	resp, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get user")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListWorkouts returns the user's history, newest first. ?limit defaults to 10.
func (h *UserHandler) ListWorkouts(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	resp, err := h.workoutService.History(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err, "failed to list workouts")
		return
	}
	c.JSON(http.StatusOK, resp)
}
