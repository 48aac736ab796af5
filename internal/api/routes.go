package api

import (
	"net/http"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP endpoints onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	planService service.PlanService,
	assignmentService service.AssignmentService,
	workoutService service.WorkoutService,
	progressService service.ProgressService,
	analyticsService service.AnalyticsService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	planHandler := NewPlanHandler(planService)
	assignmentHandler := NewAssignmentHandler(assignmentService)
	workoutHandler := NewWorkoutHandler(workoutService)
	progressHandler := NewProgressHandler(progressService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Account & Profile ---
		protected.GET("/me", userHandler.GetMyProfile)
		protected.POST("/me/avatar/upload-url", userHandler.RequestAvatarUploadURL)
		protected.POST("/me/avatar/confirm", userHandler.ConfirmAvatar)
		protected.DELETE("/users/:userId", userHandler.DeleteAccount)

		// Administrator registration of further administrators.
		protected.POST("/auth/register-admin",
			RoleMiddleware(domain.RoleAdministrator), authHandler.RegisterAdmin)

		// --- Plan catalogue ---
		plans := protected.Group("/plans")
		{
			plans.GET("/training", planHandler.ListTrainingPlans)
			plans.GET("/training/:planId", planHandler.GetTrainingPlan)
			plans.POST("/training",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), planHandler.CreateTrainingPlan)
			plans.PUT("/training/:planId",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), planHandler.UpdateTrainingPlan)
			plans.DELETE("/training/:planId",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), planHandler.DeleteTrainingPlan)
			plans.POST("/training/:planId/image/upload-url",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), planHandler.RequestPlanImageUploadURL)
			plans.POST("/training/:planId/image/confirm",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), planHandler.ConfirmPlanImage)
			plans.GET("/training/:planId/image", planHandler.GetPlanImageURL)

			plans.GET("/meal", planHandler.ListMealPlans)
			plans.GET("/meal/:planId", planHandler.GetMealPlan)
			plans.POST("/meal",
				RoleMiddleware(domain.RoleNutritionist, domain.RoleAdministrator), planHandler.CreateMealPlan)
			plans.PUT("/meal/:planId",
				RoleMiddleware(domain.RoleNutritionist, domain.RoleAdministrator), planHandler.UpdateMealPlan)
			plans.DELETE("/meal/:planId",
				RoleMiddleware(domain.RoleNutritionist, domain.RoleAdministrator), planHandler.DeleteMealPlan)
		}

		// --- Assignments ---
		users := protected.Group("/users")
		{
			users.PUT("/:userId/training-plan",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), assignmentHandler.AssignTrainingPlan)
			users.DELETE("/:userId/training-plan",
				RoleMiddleware(domain.RoleTrainer, domain.RoleAdministrator), assignmentHandler.RemoveTrainingPlan)
			users.PUT("/:userId/nutrition-plan",
				RoleMiddleware(domain.RoleNutritionist, domain.RoleAdministrator), assignmentHandler.AssignNutritionPlan)
			users.DELETE("/:userId/nutrition-plan",
				RoleMiddleware(domain.RoleNutritionist, domain.RoleAdministrator), assignmentHandler.RemoveNutritionPlan)
		}

		// --- Weekly workout cycle ---
		workouts := protected.Group("/workouts")
		{
			workouts.GET("/weekly", workoutHandler.GetWeeklyWorkouts)
			workouts.POST("/:workoutId/complete", workoutHandler.MarkWorkoutComplete)
		}

		// --- Weight & daily progress ---
		progress := protected.Group("/progress")
		{
			progress.POST("/weight", progressHandler.RecordWeight)
			progress.GET("/weight/latest", progressHandler.LatestWeight)
			progress.GET("/weight/history", progressHandler.WeightHistory)
			progress.POST("/day-complete", progressHandler.CompleteDay)
		}

		// --- Analytics (administrators only) ---
		analytics := protected.Group("/analytics")
		analytics.Use(RoleMiddleware(domain.RoleAdministrator))
		{
			analytics.GET("/exercise-popularity", analyticsHandler.ExercisePopularity)
			analytics.GET("/user-growth", analyticsHandler.UserGrowth)
		}
	}
}
