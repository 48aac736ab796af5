package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightRecord is a single weight sample. Records are append-only and never
// mutated after creation; "latest" queries order by (date desc, id desc).
type WeightRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	WeightKg float64            `bson:"weightKg" json:"weightKg"`
	Date     time.Time          `bson:"date" json:"date"`
}

// ProgressTracking counts completed workouts per user per calendar day.
type ProgressTracking struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Date              time.Time          `bson:"date" json:"date"` // Truncated to UTC midnight
	CompletedWorkouts int                `bson:"completedWorkouts" json:"completedWorkouts"`
}

// ExerciseLog records one completed exercise on a given day, feeding the
// exercise popularity analytics.
type ExerciseLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	Date         time.Time          `bson:"date" json:"date"`
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
