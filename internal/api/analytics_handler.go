package api

import (
	"net/http"

	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the platform analytics views.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) ExercisePopularity(c *gin.Context) {
	ranking, err := h.analyticsService.ExercisePopularity(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute exercise popularity.")
		return
	}
	c.JSON(http.StatusOK, ranking)
}

func (h *AnalyticsHandler) UserGrowth(c *gin.Context) {
	growth, err := h.analyticsService.UserGrowth(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute user growth.")
		return
	}
	c.JSON(http.StatusOK, growth)
}
