package api

import (
	"errors"
	"net/http"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler exposes the training plan and meal plan catalogue.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

type WorkoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscleGroup"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Sequence    int    `json:"sequence"`
}

type TrainingPlanRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Difficulty    string           `json:"difficulty"`
	Equipment     string           `json:"equipment"`
	DurationWeeks int              `json:"durationWeeks"`
	Workouts      []WorkoutRequest `json:"workouts" binding:"required,min=1,dive"`
}

type MealPlanRequest struct {
	Name             string         `json:"name" binding:"required"`
	Description      string         `json:"description"`
	DietType         string         `json:"dietType"`
	Calories         int            `json:"calories" binding:"required,min=1"`
	ProteinG         float64        `json:"proteinG"`
	CarbsG           float64        `json:"carbsG"`
	FatsG            float64        `json:"fatsG"`
	MealDistribution map[string]int `json:"mealDistribution"`
}

type RequestImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmImageRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

func (r *TrainingPlanRequest) toDomain() *domain.TrainingPlan {
	plan := &domain.TrainingPlan{
		Name:          r.Name,
		Description:   r.Description,
		Difficulty:    r.Difficulty,
		Equipment:     r.Equipment,
		DurationWeeks: r.DurationWeeks,
	}
	for _, w := range r.Workouts {
		plan.Workouts = append(plan.Workouts, domain.Workout{
			Name:        w.Name,
			Description: w.Description,
			MuscleGroup: w.MuscleGroup,
			Sets:        w.Sets,
			Reps:        w.Reps,
			Sequence:    w.Sequence,
		})
	}
	return plan
}

func (r *MealPlanRequest) toDomain() *domain.MealPlan {
	return &domain.MealPlan{
		Name:             r.Name,
		Description:      r.Description,
		DietType:         r.DietType,
		Calories:         r.Calories,
		ProteinG:         r.ProteinG,
		CarbsG:           r.CarbsG,
		FatsG:            r.FatsG,
		MealDistribution: r.MealDistribution,
	}
}

// --- Training plan handlers ---

// CreateTrainingPlan godoc
// @Summary Create a training plan template
// @Tags Plans
// @Security BearerAuth
// @Router /plans/training [post]
func (h *PlanHandler) CreateTrainingPlan(c *gin.Context) {
	var req TrainingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.CreateTrainingPlan(c.Request.Context(), actorID, req.toDomain())
	if err != nil {
		h.mapPlanError(c, err, "Failed to create training plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) UpdateTrainingPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req TrainingPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan := req.toDomain()
	plan.ID = planID
	updated, err := h.planService.UpdateTrainingPlan(c.Request.Context(), actorID, plan)
	if err != nil {
		h.mapPlanError(c, err, "Failed to update training plan.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) DeleteTrainingPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.planService.DeleteTrainingPlan(c.Request.Context(), actorID, planID); err != nil {
		h.mapPlanError(c, err, "Failed to delete training plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) GetTrainingPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetTrainingPlan(c.Request.Context(), planID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to fetch training plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ListTrainingPlans(c *gin.Context) {
	plans, err := h.planService.ListTrainingPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list training plans.")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// --- Meal plan handlers ---

func (h *PlanHandler) CreateMealPlan(c *gin.Context) {
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.planService.CreateMealPlan(c.Request.Context(), actorID, req.toDomain())
	if err != nil {
		h.mapPlanError(c, err, "Failed to create meal plan.")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) UpdateMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req MealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan := req.toDomain()
	plan.ID = planID
	updated, err := h.planService.UpdateMealPlan(c.Request.Context(), actorID, plan)
	if err != nil {
		h.mapPlanError(c, err, "Failed to update meal plan.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlanHandler) DeleteMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	if err := h.planService.DeleteMealPlan(c.Request.Context(), actorID, planID); err != nil {
		h.mapPlanError(c, err, "Failed to delete meal plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) GetMealPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.GetMealPlan(c.Request.Context(), planID)
	if err != nil {
		h.mapPlanError(c, err, "Failed to fetch meal plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ListMealPlans(c *gin.Context) {
	plans, err := h.planService.ListMealPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list meal plans.")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// --- Plan image handlers ---

func (h *PlanHandler) RequestPlanImageUploadURL(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	resp, err := h.planService.RequestPlanImageUploadURL(c.Request.Context(), actorID, planID, req.ContentType)
	if err != nil {
		h.mapPlanError(c, err, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) ConfirmPlanImage(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	var req ConfirmImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	actorID, err := getActorID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.planService.ConfirmPlanImage(c.Request.Context(), actorID, planID, req.ObjectKey); err != nil {
		h.mapPlanError(c, err, "Failed to confirm plan image.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) GetPlanImageURL(c *gin.Context) {
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	url, err := h.planService.GetPlanImageURL(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanHasNoImage) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		h.mapPlanError(c, err, "Failed to generate download URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// mapPlanError maps service errors to HTTP status codes.
func (h *PlanHandler) mapPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTrainingPlanNotFound), errors.Is(err, service.ErrMealPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// parseIDParam converts a path parameter to an ObjectID, aborting on failure.
func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
