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

const weeklyWorkoutCollectionName = "weekly_workouts"

// mongoWeeklyWorkoutRepository implements repository.WeeklyWorkoutRepository using MongoDB.
type mongoWeeklyWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyWorkoutRepository creates a new instance of mongoWeeklyWorkoutRepository.
func NewMongoWeeklyWorkoutRepository(db *mongo.Database) repository.WeeklyWorkoutRepository {
	return &mongoWeeklyWorkoutRepository{
		collection: db.Collection(weeklyWorkoutCollectionName),
	}
}

// CreateMany inserts the per-workout cycle rows for a fresh assignment.
func (r *mongoWeeklyWorkoutRepository) CreateMany(ctx context.Context, rows []domain.WeeklyWorkout) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(rows))
	for i := range rows {
		rows[i].ID = primitive.NewObjectID()
		rows[i].UpdatedAt = now
		docs = append(docs, rows[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByUserWorkoutID returns all cycle rows under a user workout.
func (r *mongoWeeklyWorkoutRepository) GetByUserWorkoutID(ctx context.Context, userWorkoutID primitive.ObjectID) ([]domain.WeeklyWorkout, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userWorkoutId": userWorkoutID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []domain.WeeklyWorkout
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Complete flips the matching incomplete row to completed with the given
// progress. The completed=false predicate in the filter makes the update a
// compare-and-swap: two concurrent callers cannot both win the same row.
func (r *mongoWeeklyWorkoutRepository) Complete(ctx context.Context, userWorkoutID, workoutID primitive.ObjectID, progress int) (*domain.WeeklyWorkout, error) {
	filter := bson.M{
		"userWorkoutId": userWorkoutID,
		"workoutId":     workoutID,
		"completed":     false,
	}
	update := bson.M{
		"$set": bson.M{
			"completed": true,
			"progress":  progress,
			"updatedAt": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var row domain.WeeklyWorkout
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ResetAll starts a fresh cycle: every row under the user workout reverts to
// incomplete with zero progress.
func (r *mongoWeeklyWorkoutRepository) ResetAll(ctx context.Context, userWorkoutID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"completed": false,
			"progress":  0,
			"updatedAt": time.Now().UTC(),
		},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"userWorkoutId": userWorkoutID}, update)
	return err
}

// DeleteByUserWorkoutID removes all cycle rows when their parent assignment goes away.
func (r *mongoWeeklyWorkoutRepository) DeleteByUserWorkoutID(ctx context.Context, userWorkoutID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userWorkoutId": userWorkoutID})
	return err
}

// EnsureWeeklyWorkoutIndexes creates indexes for the weekly_workouts collection.
func EnsureWeeklyWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userWorkoutId", Value: 1}, {Key: "workoutId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
