package service

import (
	"context"
	"errors"
	"time"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoWeightRecord  = errors.New("no record found")
	ErrNoWeightRecords = errors.New("no records found")
	ErrInvalidWeight   = errors.New("weight must be a positive value")
)

// DayResult is the success payload of a day-complete call.
type DayResult struct {
	CompletedWorkouts int      `json:"completedWorkouts"` // Counter value for today after the increment
	LoggedExercises   []string `json:"loggedExercises"`
	SkippedExercises  []string `json:"skippedExercises,omitempty"`
}

// ProgressService keeps the append-only weight history and the per-day
// completed-workout tallies.
type ProgressService interface {
	RecordWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64) (*domain.WeightRecord, error)
	LatestWeight(ctx context.Context, userID primitive.ObjectID) (*domain.WeightRecord, error)
	WeightHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightRecord, error)

	// CompleteDay bumps today's completed-workout counter (creating it at 1 on
	// first use) and logs one row per completed exercise. Exercise names that
	// do not resolve against the user's assigned plan are skipped, not errors.
	CompleteDay(ctx context.Context, userID primitive.ObjectID, completedExercises []string) (*DayResult, error)
}

type progressService struct {
	userRepo         repository.UserRepository
	userWorkoutRepo  repository.UserWorkoutRepository
	trainingPlanRepo repository.TrainingPlanRepository
	weightRepo       repository.WeightRecordRepository
	progressRepo     repository.ProgressTrackingRepository
	exerciseLogRepo  repository.ExerciseLogRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	userRepo repository.UserRepository,
	userWorkoutRepo repository.UserWorkoutRepository,
	trainingPlanRepo repository.TrainingPlanRepository,
	weightRepo repository.WeightRecordRepository,
	progressRepo repository.ProgressTrackingRepository,
	exerciseLogRepo repository.ExerciseLogRepository,
) ProgressService {
	return &progressService{
		userRepo:         userRepo,
		userWorkoutRepo:  userWorkoutRepo,
		trainingPlanRepo: trainingPlanRepo,
		weightRepo:       weightRepo,
		progressRepo:     progressRepo,
		exerciseLogRepo:  exerciseLogRepo,
	}
}

func (s *progressService) RecordWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64) (*domain.WeightRecord, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rec := &domain.WeightRecord{
		UserID:   userID,
		WeightKg: weightKg,
		Date:     time.Now().UTC(),
	}
	id, err := s.weightRepo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

func (s *progressService) LatestWeight(ctx context.Context, userID primitive.ObjectID) (*domain.WeightRecord, error) {
	rec, err := s.weightRepo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoWeightRecord
		}
		return nil, err
	}
	return rec, nil
}

func (s *progressService) WeightHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightRecord, error) {
	recs, err := s.weightRepo.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNoWeightRecords
	}
	return recs, nil
}

func (s *progressService) CompleteDay(ctx context.Context, userID primitive.ObjectID, completedExercises []string) (*DayResult, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	known := s.assignedWorkoutNames(ctx, userID)
	now := time.Now().UTC()

	count, err := s.progressRepo.IncrementDay(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	result := &DayResult{CompletedWorkouts: count}
	for _, name := range completedExercises {
		if _, ok := known[name]; !ok {
			result.SkippedExercises = append(result.SkippedExercises, name)
			continue
		}
		entry := &domain.ExerciseLog{
			UserID:       userID,
			ExerciseName: name,
			Date:         now,
		}
		if _, err := s.exerciseLogRepo.Create(ctx, entry); err != nil {
			return nil, err
		}
		result.LoggedExercises = append(result.LoggedExercises, name)
	}
	return result, nil
}

// assignedWorkoutNames resolves exercise names against the user's current
// training plan. A user without a live assignment resolves nothing.
func (s *progressService) assignedWorkoutNames(ctx context.Context, userID primitive.ObjectID) map[string]struct{} {
	names := make(map[string]struct{})
	uw, err := s.userWorkoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return names
	}
	plan, err := s.trainingPlanRepo.GetByID(ctx, uw.TrainingPlanID)
	if err != nil {
		return names
	}
	for _, w := range plan.Workouts {
		names[w.Name] = struct{}{}
	}
	return names
}
