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

const userWorkoutCollectionName = "user_workouts"

// mongoUserWorkoutRepository implements repository.UserWorkoutRepository using MongoDB.
type mongoUserWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoUserWorkoutRepository creates a new instance of mongoUserWorkoutRepository.
func NewMongoUserWorkoutRepository(db *mongo.Database) repository.UserWorkoutRepository {
	return &mongoUserWorkoutRepository{
		collection: db.Collection(userWorkoutCollectionName),
	}
}

// Create inserts the live training assignment for a user.
func (r *mongoUserWorkoutRepository) Create(ctx context.Context, uw *domain.UserWorkout) (primitive.ObjectID, error) {
	if uw.UserID.IsZero() || uw.TrainingPlanID.IsZero() {
		return primitive.NilObjectID, errors.New("user ID and training plan ID are required")
	}

	uw.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if uw.DateStarted.IsZero() {
		uw.DateStarted = now
	}
	uw.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, uw)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Unique index on userId: a live assignment already exists.
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

// GetByUserID retrieves the live training assignment for a user.
func (r *mongoUserWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserWorkout, error) {
	var uw domain.UserWorkout
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&uw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &uw, nil
}

// SetProgress stores the recomputed aggregate progress.
func (r *mongoUserWorkoutRepository) SetProgress(ctx context.Context, id primitive.ObjectID, progress int) error {
	update := bson.M{
		"$set": bson.M{
			"progress":  progress,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the user's live training assignment.
func (r *mongoUserWorkoutRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserWorkoutIndexes creates indexes for the user_workouts collection.
// The unique userId index enforces at most one live assignment per user.
func EnsureUserWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
