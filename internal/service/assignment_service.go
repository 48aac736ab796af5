package service

import (
	"context"
	"errors"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingPlanNotFound  = errors.New("training plan not found")
	ErrMealPlanNotFound      = errors.New("meal plan not found")
	ErrNoTrainingAssignment  = errors.New("user has no assigned training plan")
	ErrNoNutritionAssignment = errors.New("user has no assigned meal plan")
)

// AssignmentService owns the plan-assignment state machine: which plans a
// user currently has, and the composite user status derived from them.
type AssignmentService interface {
	AssignTrainingPlan(ctx context.Context, actorID, userID, planID primitive.ObjectID) (*domain.UserWorkout, error)
	AssignNutritionPlan(ctx context.Context, actorID, userID, planID primitive.ObjectID) (*domain.UserNutritionPlan, error)
	RemoveTrainingPlan(ctx context.Context, actorID, userID primitive.ObjectID) error
	RemoveNutritionPlan(ctx context.Context, actorID, userID primitive.ObjectID) error
	RecomputeStatus(ctx context.Context, userID primitive.ObjectID) (domain.Status, error)
}

type assignmentService struct {
	gate             roleGate
	userRepo         repository.UserRepository
	trainingPlanRepo repository.TrainingPlanRepository
	mealPlanRepo     repository.MealPlanRepository
	userWorkoutRepo  repository.UserWorkoutRepository
	weeklyRepo       repository.WeeklyWorkoutRepository
	nutritionRepo    repository.UserNutritionPlanRepository
	tx               repository.TxRunner
}

// NewAssignmentService creates a new instance of assignmentService.
func NewAssignmentService(
	userRepo repository.UserRepository,
	trainingPlanRepo repository.TrainingPlanRepository,
	mealPlanRepo repository.MealPlanRepository,
	userWorkoutRepo repository.UserWorkoutRepository,
	weeklyRepo repository.WeeklyWorkoutRepository,
	nutritionRepo repository.UserNutritionPlanRepository,
	tx repository.TxRunner,
) AssignmentService {
	return &assignmentService{
		gate:             roleGate{userRepo: userRepo},
		userRepo:         userRepo,
		trainingPlanRepo: trainingPlanRepo,
		mealPlanRepo:     mealPlanRepo,
		userWorkoutRepo:  userWorkoutRepo,
		weeklyRepo:       weeklyRepo,
		nutritionRepo:    nutritionRepo,
		tx:               tx,
	}
}

// AssignTrainingPlan replaces the user's live training assignment with a
// fresh one for planID. The old UserWorkout and its weekly rows are deleted,
// a new UserWorkout plus one incomplete WeeklyWorkout per plan workout are
// created, and the user status is recomputed. All of it runs in one
// transaction so a crash cannot leave a user with zero or two live
// assignments.
func (s *assignmentService) AssignTrainingPlan(ctx context.Context, actorID, userID, planID primitive.ObjectID) (*domain.UserWorkout, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan, err := s.trainingPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingPlanNotFound
		}
		return nil, err
	}

	uw := &domain.UserWorkout{
		UserID:         user.ID,
		TrainingPlanID: plan.ID,
		Progress:       0,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Replace, never merge: any previous assignment and its cycle rows go away.
		if prev, err := s.userWorkoutRepo.GetByUserID(ctx, userID); err == nil {
			if err := s.weeklyRepo.DeleteByUserWorkoutID(ctx, prev.ID); err != nil {
				return err
			}
			if err := s.userWorkoutRepo.DeleteByUserID(ctx, userID); err != nil {
				return err
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		uwID, err := s.userWorkoutRepo.Create(ctx, uw)
		if err != nil {
			return err
		}
		uw.ID = uwID

		rows := make([]domain.WeeklyWorkout, 0, len(plan.Workouts))
		for _, w := range plan.Workouts {
			rows = append(rows, domain.WeeklyWorkout{
				UserWorkoutID: uwID,
				UserID:        user.ID,
				WorkoutID:     w.ID,
				WorkoutName:   w.Name,
				Completed:     false,
			})
		}
		if err := s.weeklyRepo.CreateMany(ctx, rows); err != nil {
			return err
		}

		_, err = s.recomputeStatus(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uw, nil
}

// AssignNutritionPlan replaces the user's live meal plan link, then
// recomputes status. No child fan-out is involved.
func (s *assignmentService) AssignNutritionPlan(ctx context.Context, actorID, userID, planID primitive.ObjectID) (*domain.UserNutritionPlan, error) {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleNutritionist, domain.RoleAdministrator); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plan, err := s.mealPlanRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}

	unp := &domain.UserNutritionPlan{
		UserID:     user.ID,
		MealPlanID: plan.ID,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.nutritionRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		unpID, err := s.nutritionRepo.Create(ctx, unp)
		if err != nil {
			return err
		}
		unp.ID = unpID

		_, err = s.recomputeStatus(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return unp, nil
}

// RemoveTrainingPlan deletes the user's live training assignment and its
// weekly rows, degrading status (assigned -> nutrition_only, training_only ->
// awaiting_assignment) via the same recompute as every other mutation.
func (s *assignmentService) RemoveTrainingPlan(ctx context.Context, actorID, userID primitive.ObjectID) error {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleTrainer, domain.RoleAdministrator); err != nil {
		return err
	}

	uw, err := s.userWorkoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoTrainingAssignment
		}
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.weeklyRepo.DeleteByUserWorkoutID(ctx, uw.ID); err != nil {
			return err
		}
		if err := s.userWorkoutRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		_, err := s.recomputeStatus(ctx, userID)
		return err
	})
}

// RemoveNutritionPlan deletes the user's live meal plan link and degrades
// status analogously.
func (s *assignmentService) RemoveNutritionPlan(ctx context.Context, actorID, userID primitive.ObjectID) error {
	if _, err := s.gate.Require(ctx, actorID, domain.RoleNutritionist, domain.RoleAdministrator); err != nil {
		return err
	}

	if _, err := s.nutritionRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoNutritionAssignment
		}
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.nutritionRepo.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		_, err := s.recomputeStatus(ctx, userID)
		return err
	})
}

// RecomputeStatus re-derives and stores the user's composite status from
// assignment presence.
func (s *assignmentService) RecomputeStatus(ctx context.Context, userID primitive.ObjectID) (domain.Status, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return s.recomputeStatus(ctx, userID)
}

func (s *assignmentService) recomputeStatus(ctx context.Context, userID primitive.ObjectID) (domain.Status, error) {
	hasTraining, err := s.hasLiveTraining(ctx, userID)
	if err != nil {
		return "", err
	}
	hasNutrition, err := s.hasLiveNutrition(ctx, userID)
	if err != nil {
		return "", err
	}

	status := domain.StatusFor(hasTraining, hasNutrition)
	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return "", err
	}
	return status, nil
}

func (s *assignmentService) hasLiveTraining(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	_, err := s.userWorkoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *assignmentService) hasLiveNutrition(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	_, err := s.nutritionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
