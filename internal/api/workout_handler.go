package api

import (
	"errors"
	"net/http"

	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler exposes the weekly workout cycle operations.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type MarkCompleteRequest struct {
	// Progress is optional; when omitted the workout is recorded at 100.
	Progress *int `json:"progress" binding:"omitempty,min=0,max=100"`
}

// GetWeeklyWorkouts returns the caller's current cycle rows.
func (h *WorkoutHandler) GetWeeklyWorkouts(c *gin.Context) {
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	rows, err := h.workoutService.GetWeeklyWorkouts(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutAssignmentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch weekly workouts.")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MarkWorkoutComplete godoc
// @Summary Mark one workout of the current weekly cycle complete
// @Description Completing the last workout of the cycle resets every row and zeroes the aggregate progress.
// @Tags Workouts
// @Security BearerAuth
// @Router /workouts/{workoutId}/complete [post]
func (h *WorkoutHandler) MarkWorkoutComplete(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "workoutId")
	if !ok {
		return
	}
	// The body is optional; completing without a hint records 100.
	var req MarkCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	result, err := h.workoutService.MarkWorkoutComplete(c.Request.Context(), userID, workoutID, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutAssignmentNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWorkoutNotFoundOrCompleted):
			// Wrong id and already-completed share one message on purpose.
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidProgress):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to mark workout complete.")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
