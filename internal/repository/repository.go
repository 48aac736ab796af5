package repository

import (
	"context"
	"time"

	"nutrifit/fitness-platform/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxRunner executes fn as one atomic unit of work. Multi-document mutations
// (replace-on-reassign, the weekly cycle reset) go through it so a crash
// mid-sequence cannot leave a user with zero or two live assignments.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) error
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingPlanRepository defines the interface for training plan templates.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MealPlanRepository defines the interface for meal plan templates.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealPlan, error)
	List(ctx context.Context) ([]domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserWorkoutRepository manages the single live training assignment per user.
type UserWorkoutRepository interface {
	Create(ctx context.Context, uw *domain.UserWorkout) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserWorkout, error)
	SetProgress(ctx context.Context, id primitive.ObjectID, progress int) error
	// DeleteByUserID removes the live assignment, returning ErrNotFound when
	// the user has none.
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// WeeklyWorkoutRepository manages the per-cycle completion rows.
type WeeklyWorkoutRepository interface {
	CreateMany(ctx context.Context, rows []domain.WeeklyWorkout) error
	GetByUserWorkoutID(ctx context.Context, userWorkoutID primitive.ObjectID) ([]domain.WeeklyWorkout, error)
	// Complete flips the row matching (userWorkoutID, workoutID, completed=false)
	// to completed with the given progress. The completed=false predicate makes
	// the update a compare-and-swap: at most one concurrent caller wins, the
	// rest get ErrNotFound.
	Complete(ctx context.Context, userWorkoutID, workoutID primitive.ObjectID, progress int) (*domain.WeeklyWorkout, error)
	// ResetAll flips every row under the user workout back to completed=false
	// with zero progress.
	ResetAll(ctx context.Context, userWorkoutID primitive.ObjectID) error
	DeleteByUserWorkoutID(ctx context.Context, userWorkoutID primitive.ObjectID) error
}

// UserNutritionPlanRepository manages the single live meal plan link per user.
type UserNutritionPlanRepository interface {
	Create(ctx context.Context, unp *domain.UserNutritionPlan) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserNutritionPlan, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// WeightRecordRepository stores the append-only weight history.
type WeightRecordRepository interface {
	Create(ctx context.Context, rec *domain.WeightRecord) (primitive.ObjectID, error)
	// Latest returns the newest record ordered by (date desc, id desc).
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.WeightRecord, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightRecord, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// ProgressTrackingRepository stores per-day completed-workout counters.
type ProgressTrackingRepository interface {
	// IncrementDay adds one to the counter for (userID, day), creating the row
	// with a count of 1 when none exists yet. Returns the resulting count.
	IncrementDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (int, error)
	GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (*domain.ProgressTracking, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// ExerciseLogRepository stores completed-exercise rows for analytics.
type ExerciseLogRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error)
	// CountByExercise returns per-exercise completion counts across all users.
	CountByExercise(ctx context.Context) (map[string]int, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}
