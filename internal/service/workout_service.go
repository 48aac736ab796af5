package service

import (
	"context"
	"errors"
	"math"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrWorkoutAssignmentNotFound: the user has no live training assignment at all.
	ErrWorkoutAssignmentNotFound = errors.New("workout not found")
	// ErrWorkoutNotFoundOrCompleted deliberately merges "wrong workout id" and
	// "already completed this cycle" into one user-visible message.
	ErrWorkoutNotFoundOrCompleted = errors.New("workout not found or already completed")
	ErrInvalidProgress            = errors.New("progress must be between 0 and 100")
)

// MarkOutcome distinguishes a normal completion from the cycle reset.
type MarkOutcome string

const (
	OutcomeMarkedComplete MarkOutcome = "marked complete"
	OutcomeCycleReset     MarkOutcome = "all completed, resetting"
)

// MarkResult is the success payload of a mark-complete transition.
type MarkResult struct {
	Outcome   MarkOutcome `json:"outcome"`
	Progress  int         `json:"progress"` // Aggregate UserWorkout progress after the transition
	Completed int         `json:"completed"`
	Total     int         `json:"total"`
}

// WorkoutService drives the weekly workout cycle of a live training
// assignment: per-workout completion flags, the aggregate progress, and the
// automatic reset once every workout of the cycle is done.
type WorkoutService interface {
	// MarkWorkoutComplete flips the matching incomplete cycle row to completed.
	// progressHint, when non-nil, is recorded as that row's progress (callers
	// that track effort report it); nil records 100. When the transition
	// completes the cycle, every row resets to incomplete and the aggregate
	// progress returns to zero.
	MarkWorkoutComplete(ctx context.Context, userID, workoutID primitive.ObjectID, progressHint *int) (*MarkResult, error)

	// GetWeeklyWorkouts returns the current cycle rows for the user's live assignment.
	GetWeeklyWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyWorkout, error)
}

type workoutService struct {
	userWorkoutRepo repository.UserWorkoutRepository
	weeklyRepo      repository.WeeklyWorkoutRepository
	tx              repository.TxRunner
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	userWorkoutRepo repository.UserWorkoutRepository,
	weeklyRepo repository.WeeklyWorkoutRepository,
	tx repository.TxRunner,
) WorkoutService {
	return &workoutService{
		userWorkoutRepo: userWorkoutRepo,
		weeklyRepo:      weeklyRepo,
		tx:              tx,
	}
}

func (s *workoutService) MarkWorkoutComplete(ctx context.Context, userID, workoutID primitive.ObjectID, progressHint *int) (*MarkResult, error) {
	rowProgress := 100
	if progressHint != nil {
		if *progressHint < 0 || *progressHint > 100 {
			return nil, ErrInvalidProgress
		}
		rowProgress = *progressHint
	}

	uw, err := s.userWorkoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutAssignmentNotFound
		}
		return nil, err
	}

	var result MarkResult
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// The completed=false predicate inside Complete is the only thing that
		// keeps two devices from double-counting the same workout; everything
		// after it runs on the winner's side only.
		if _, err := s.weeklyRepo.Complete(ctx, uw.ID, workoutID, rowProgress); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrWorkoutNotFoundOrCompleted
			}
			return err
		}

		rows, err := s.weeklyRepo.GetByUserWorkoutID(ctx, uw.ID)
		if err != nil {
			return err
		}

		total := len(rows)
		completed := 0
		for _, row := range rows {
			if row.Completed {
				completed++
			}
		}

		if total > 0 && completed == total {
			// Cycle-complete: start the next weekly cycle from scratch.
			if err := s.weeklyRepo.ResetAll(ctx, uw.ID); err != nil {
				return err
			}
			if err := s.userWorkoutRepo.SetProgress(ctx, uw.ID, 0); err != nil {
				return err
			}
			result = MarkResult{Outcome: OutcomeCycleReset, Progress: 0, Completed: total, Total: total}
			return nil
		}

		aggregate := int(math.Round(100 * float64(completed) / float64(total)))
		if err := s.userWorkoutRepo.SetProgress(ctx, uw.ID, aggregate); err != nil {
			return err
		}
		result = MarkResult{Outcome: OutcomeMarkedComplete, Progress: aggregate, Completed: completed, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *workoutService) GetWeeklyWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.WeeklyWorkout, error) {
	uw, err := s.userWorkoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutAssignmentNotFound
		}
		return nil, err
	}
	return s.weeklyRepo.GetByUserWorkoutID(ctx, uw.ID)
}
