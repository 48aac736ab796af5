// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a single workout session inside a TrainingPlan template.
// Workouts live embedded in their plan; they have no meaning outside it.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // e.g., "Day 1: Upper Body"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs"
	Sets        int                `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        int                `bson:"reps,omitempty" json:"reps,omitempty"`
	Sequence    int                `bson:"sequence" json:"sequence"` // Order within the plan
}

// TrainingPlan is a reusable template: many users may be assigned the same plan.
// Created/updated/deleted by trainer or administrator roles only.
type TrainingPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"` // e.g., "Phase 1: Hypertrophy"
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty    string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"` // e.g., "Novice", "Medium", "Advanced"
	Equipment     string             `bson:"equipment,omitempty" json:"equipment,omitempty"`   // e.g., "Home", "Gym", "Home/Gym"
	DurationWeeks int                `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`
	ImageKey      string             `bson:"imageKey,omitempty" json:"-"` // S3 object key of the plan image
	Workouts      []Workout          `bson:"workouts" json:"workouts"`    // Ordered by Sequence
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutByID returns the embedded workout with the given id, or nil.
func (p *TrainingPlan) WorkoutByID(id primitive.ObjectID) *Workout {
	for i := range p.Workouts {
		if p.Workouts[i].ID == id {
			return &p.Workouts[i]
		}
	}
	return nil
}
