package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrifit/fitness-platform/internal/api"
	"nutrifit/fitness-platform/internal/config"
	"nutrifit/fitness-platform/internal/repository/mongo"
	"nutrifit/fitness-platform/internal/service"
	"nutrifit/fitness-platform/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Fitness & Nutrition Platform API
// @version 1.0
// @description API for user accounts, plan assignment and progress tracking.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("Starting fitness platform server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTrainingPlanIndexes(ctx, appDB.Collection("training_plans"))
		mongo.EnsureUserWorkoutIndexes(ctx, appDB.Collection("user_workouts"))
		mongo.EnsureWeeklyWorkoutIndexes(ctx, appDB.Collection("weekly_workouts"))
		mongo.EnsureUserNutritionPlanIndexes(ctx, appDB.Collection("user_nutrition_plans"))
		mongo.EnsureWeightRecordIndexes(ctx, appDB.Collection("weight_records"))
		mongo.EnsureProgressTrackingIndexes(ctx, appDB.Collection("progress_tracking"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	trainingPlanRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	mealPlanRepo := mongo.NewMongoMealPlanRepository(appDB)
	userWorkoutRepo := mongo.NewMongoUserWorkoutRepository(appDB)
	weeklyWorkoutRepo := mongo.NewMongoWeeklyWorkoutRepository(appDB)
	nutritionRepo := mongo.NewMongoUserNutritionPlanRepository(appDB)
	weightRepo := mongo.NewMongoWeightRecordRepository(appDB)
	progressRepo := mongo.NewMongoProgressTrackingRepository(appDB)
	exerciseLogRepo := mongo.NewMongoExerciseLogRepository(appDB)
	txRunner := mongo.NewSessionTxRunner(dbClient)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, userWorkoutRepo, weeklyWorkoutRepo, nutritionRepo,
		weightRepo, progressRepo, exerciseLogRepo, fileStorage, txRunner)
	planService := service.NewPlanService(userRepo, trainingPlanRepo, mealPlanRepo, fileStorage)
	assignmentService := service.NewAssignmentService(userRepo, trainingPlanRepo, mealPlanRepo,
		userWorkoutRepo, weeklyWorkoutRepo, nutritionRepo, txRunner)
	workoutService := service.NewWorkoutService(userWorkoutRepo, weeklyWorkoutRepo, txRunner)
	progressService := service.NewProgressService(userRepo, userWorkoutRepo, trainingPlanRepo,
		weightRepo, progressRepo, exerciseLogRepo)
	analyticsService := service.NewAnalyticsService(userRepo, exerciseLogRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, userService, planService,
		assignmentService, workoutService, progressService, analyticsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not start server: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exited.")
}
