package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/swole-ai/backend/internal/service"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// WorkoutHandler serves workout generation, lookup and feedback
type WorkoutHandler struct {
	workoutService service.IWorkoutService
	generateLimit  gin.HandlerFunc
}

// NewWorkoutHandler creates a handler. generateLimit may be nil.
func NewWorkoutHandler(workoutService service.IWorkoutService, generateLimit gin.HandlerFunc) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		generateLimit:  generateLimit,
	}
}

func (h *WorkoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/workout-types", h.ListWorkoutTypes)

	workouts := router.Group("/workouts")
	{
		if h.generateLimit != nil {
			workouts.POST("/generate", h.generateLimit, h.Generate)
		} else {
			workouts.POST("/generate", h.Generate)
		}
		workouts.GET("/:workout_id", h.GetWorkout)
		workouts.POST("/:workout_id/feedback", h.SubmitFeedback)
	}
}

func (h *WorkoutHandler) ListWorkoutTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"workout_types": types.WorkoutTypes})
}

// Generate synthesizes and stores a workout for a user
func (h *WorkoutHandler) Generate(c *gin.Context) {
	var req types.GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.workoutService.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to generate workout")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	id, ok := parseID(c, "workout_id")
	if !ok {
		return
	}

	resp, err := h.workoutService.GetWorkout(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get workout")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitFeedback records how a workout went and returns a recommendation
func (h *WorkoutHandler) SubmitFeedback(c *gin.Context) {
	id, ok := parseID(c, "workout_id")
	if !ok {
		return
	}

	var req types.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.workoutService.SubmitFeedback(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "failed to submit feedback")
		return
	}
	c.JSON(http.StatusOK, resp)
}
