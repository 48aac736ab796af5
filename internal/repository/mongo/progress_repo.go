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

const (
	progressTrackingCollectionName = "progress_tracking"
	exerciseLogCollectionName      = "exercise_logs"
)

// mongoProgressTrackingRepository implements repository.ProgressTrackingRepository using MongoDB.
type mongoProgressTrackingRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressTrackingRepository creates a new instance of mongoProgressTrackingRepository.
func NewMongoProgressTrackingRepository(db *mongo.Database) repository.ProgressTrackingRepository {
	return &mongoProgressTrackingRepository{
		collection: db.Collection(progressTrackingCollectionName),
	}
}

// IncrementDay bumps the per-day counter with get-or-create semantics: a
// single upsert with $inc creates the row at 1 or adds 1 atomically.
func (r *mongoProgressTrackingRepository) IncrementDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (int, error) {
	day = domain.Day(day)
	filter := bson.M{"userId": userID, "date": day}
	update := bson.M{
		"$inc": bson.M{"completedWorkouts": 1},
		"$setOnInsert": bson.M{
			"userId": userID,
			"date":   day,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var row domain.ProgressTracking
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row); err != nil {
		return 0, err
	}
	return row.CompletedWorkouts, nil
}

// GetByUserAndDay retrieves the counter row for one calendar day.
func (r *mongoProgressTrackingRepository) GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day time.Time) (*domain.ProgressTracking, error) {
	var row domain.ProgressTracking
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": domain.Day(day)}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// DeleteByUserID removes all counter rows on account deletion.
func (r *mongoProgressTrackingRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// EnsureProgressTrackingIndexes creates indexes for the progress_tracking collection.
func EnsureProgressTrackingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// mongoExerciseLogRepository implements repository.ExerciseLogRepository using MongoDB.
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates a new instance of mongoExerciseLogRepository.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts one completed-exercise row.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error) {
	if entry.UserID.IsZero() || entry.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("user ID and exercise name are required")
	}

	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// CountByExercise groups log rows by exercise name via an aggregation pipeline.
func (r *mongoExerciseLogRepository) CountByExercise(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$exerciseName",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int)
	for cursor.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Name] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// DeleteByUserID removes all log rows on account deletion.
func (r *mongoExerciseLogRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
