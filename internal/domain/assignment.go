package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserWorkout is the single active assignment of a TrainingPlan to a User.
// At most one live row per user; assigning a new plan destroys the previous
// row together with its WeeklyWorkout children.
type UserWorkout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"`
	Progress       int                `bson:"progress" json:"progress"` // 0-100, completed/total ratio
	DateStarted    time.Time          `bson:"dateStarted" json:"dateStarted"`
	DateCompleted  *time.Time         `bson:"dateCompleted,omitempty" json:"dateCompleted,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeeklyWorkout tracks one constituent workout of an assigned plan for the
// current weekly cycle. One row per (UserWorkout, plan workout); the rows
// share their parent's lifetime.
type WeeklyWorkout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserWorkoutID primitive.ObjectID `bson:"userWorkoutId" json:"userWorkoutId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"` // Denormalized for lookup by (user, workout)
	WorkoutID     primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	WorkoutName   string             `bson:"workoutName" json:"workoutName"`
	Completed     bool               `bson:"completed" json:"completed"`
	Progress      int                `bson:"progress" json:"progress"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserNutritionPlan is the single active assignment of a MealPlan to a User.
// Unique per user; replacing deletes the prior link.
type UserNutritionPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	MealPlanID primitive.ObjectID `bson:"mealPlanId" json:"mealPlanId"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
}
