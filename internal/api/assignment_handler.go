package api

import (
	"errors"
	"net/http"

	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentHandler exposes the plan-assignment operations.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

type AssignPlanRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// AssignTrainingPlan godoc
// @Summary Assign a training plan to a user
// @Description Replaces any existing training assignment; weekly workout rows are recreated and the user's status recomputed.
// @Tags Assignments
// @Security BearerAuth
// @Router /users/{userId}/training-plan [put]
func (h *AssignmentHandler) AssignTrainingPlan(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	planID, ok := parseHexID(c, req.PlanID, "planId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	uw, err := h.assignmentService.AssignTrainingPlan(c.Request.Context(), actorID, userID, planID)
	if err != nil {
		h.mapAssignmentError(c, err, "Failed to assign training plan.")
		return
	}
	c.JSON(http.StatusOK, uw)
}

// AssignNutritionPlan assigns a meal plan, replacing any existing link.
func (h *AssignmentHandler) AssignNutritionPlan(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	planID, ok := parseHexID(c, req.PlanID, "planId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	unp, err := h.assignmentService.AssignNutritionPlan(c.Request.Context(), actorID, userID, planID)
	if err != nil {
		h.mapAssignmentError(c, err, "Failed to assign meal plan.")
		return
	}
	c.JSON(http.StatusOK, unp)
}

// RemoveTrainingPlan removes the user's live training assignment and degrades
// their status.
func (h *AssignmentHandler) RemoveTrainingPlan(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.assignmentService.RemoveTrainingPlan(c.Request.Context(), actorID, userID); err != nil {
		h.mapAssignmentError(c, err, "Failed to remove training plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveNutritionPlan removes the user's live meal plan link.
func (h *AssignmentHandler) RemoveNutritionPlan(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.assignmentService.RemoveNutritionPlan(c.Request.Context(), actorID, userID); err != nil {
		h.mapAssignmentError(c, err, "Failed to remove meal plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssignmentHandler) mapAssignmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTrainingPlanNotFound),
		errors.Is(err, service.ErrMealPlanNotFound),
		errors.Is(err, service.ErrNoTrainingAssignment),
		errors.Is(err, service.ErrNoNutritionAssignment):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseHexID converts a request-body hex id, aborting on failure.
func parseHexID(c *gin.Context, hex, name string) (id primitive.ObjectID, ok bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
