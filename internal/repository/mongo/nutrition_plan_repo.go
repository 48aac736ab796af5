package mongo

import (
	"context"
	"errors"
	"time"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userNutritionPlanCollectionName = "user_nutrition_plans"

// mongoUserNutritionPlanRepository implements repository.UserNutritionPlanRepository using MongoDB.
type mongoUserNutritionPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoUserNutritionPlanRepository creates a new instance of mongoUserNutritionPlanRepository.
func NewMongoUserNutritionPlanRepository(db *mongo.Database) repository.UserNutritionPlanRepository {
	return &mongoUserNutritionPlanRepository{
		collection: db.Collection(userNutritionPlanCollectionName),
	}
}

// Create inserts the live meal plan link for a user.
func (r *mongoUserNutritionPlanRepository) Create(ctx context.Context, unp *domain.UserNutritionPlan) (primitive.ObjectID, error) {
	if unp.UserID.IsZero() || unp.MealPlanID.IsZero() {
		return primitive.NilObjectID, errors.New("user ID and meal plan ID are required")
	}

	unp.ID = primitive.NewObjectID()
	if unp.AssignedAt.IsZero() {
		unp.AssignedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, unp)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrUpdateFailed
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the live meal plan link for a user.
func (r *mongoUserNutritionPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserNutritionPlan, error) {
	var unp domain.UserNutritionPlan
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&unp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &unp, nil
}

// DeleteByUserID removes the user's live meal plan link.
func (r *mongoUserNutritionPlanRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserNutritionPlanIndexes creates indexes for the user_nutrition_plans
// collection. The unique userId index enforces one live link per user.
func EnsureUserNutritionPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
