package api

import (
	"errors"
	"net/http"

	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgressHandler exposes weight history and day-completion tracking.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type RecordWeightRequest struct {
	WeightKg float64 `json:"weightKg" binding:"required,gt=0"`
}

type CompleteDayRequest struct {
	CompletedExercises []string `json:"completedExercises"`
}

// RecordWeight appends a weight sample for the caller.
func (h *ProgressHandler) RecordWeight(c *gin.Context) {
	var req RecordWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	rec, err := h.progressService.RecordWeight(c.Request.Context(), userID, req.WeightKg)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWeight):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record weight.")
		}
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// LatestWeight returns the most recent weight sample.
func (h *ProgressHandler) LatestWeight(c *gin.Context) {
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	rec, err := h.progressService.LatestWeight(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoWeightRecord) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch latest weight.")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// WeightHistory returns all weight samples, oldest first.
func (h *ProgressHandler) WeightHistory(c *gin.Context) {
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	recs, err := h.progressService.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoWeightRecords) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch weight history.")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// CompleteDay bumps today's completed-workout counter and logs the completed
// exercises.
func (h *ProgressHandler) CompleteDay(c *gin.Context) {
	var req CompleteDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	result, err := h.progressService.CompleteDay(c.Request.Context(), userID, req.CompletedExercises)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to record day completion.")
		return
	}
	c.JSON(http.StatusOK, result)
}
