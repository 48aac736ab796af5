// internal/domain/meal_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlan is a reusable nutrition template, independent of any user.
// Created/updated/deleted by nutritionist or administrator roles only.
type MealPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DietType    string             `bson:"dietType,omitempty" json:"dietType,omitempty"` // e.g., "keto", "balanced", "vegan"
	Calories    int                `bson:"calories" json:"calories"`                     // Daily kcal target
	ProteinG    float64            `bson:"proteinG,omitempty" json:"proteinG,omitempty"`
	CarbsG      float64            `bson:"carbsG,omitempty" json:"carbsG,omitempty"`
	FatsG       float64            `bson:"fatsG,omitempty" json:"fatsG,omitempty"`

	// MealDistribution maps a meal time to its share of daily calories,
	// e.g. {"breakfast": 25, "lunch": 40, "dinner": 25, "snack": 10}.
	MealDistribution map[string]int `bson:"mealDistribution,omitempty" json:"mealDistribution,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
