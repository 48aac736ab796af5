package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleClient        Role = "client"
	RoleTrainer       Role = "trainer"
	RoleNutritionist  Role = "nutritionist"
	RoleAdministrator Role = "administrator"
)

// Status reflects which active plan assignments a user currently has.
type Status string

const (
	StatusAwaitingAssignment Status = "awaiting_assignment"
	StatusAssigned           Status = "assigned"
	StatusTrainingOnly       Status = "training_only"
	StatusNutritionOnly      Status = "nutrition_only"
)

// StatusFor derives the composite user status from assignment presence.
// Status is never written any other way, so the stored field cannot drift
// from the assignment rows it summarizes.
func StatusFor(hasTraining, hasNutrition bool) Status {
	switch {
	case hasTraining && hasNutrition:
		return StatusAssigned
	case hasTraining:
		return StatusTrainingOnly
	case hasNutrition:
		return StatusNutritionOnly
	default:
		return StatusAwaitingAssignment
	}
}

// User represents a platform account (client, trainer, nutritionist or administrator).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Status       Status             `bson:"status" json:"status"`
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"` // S3 object key of the profile photo
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
