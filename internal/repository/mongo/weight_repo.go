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

const weightRecordCollectionName = "weight_records"

// mongoWeightRecordRepository implements repository.WeightRecordRepository using MongoDB.
type mongoWeightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightRecordRepository creates a new instance of mongoWeightRecordRepository.
func NewMongoWeightRecordRepository(db *mongo.Database) repository.WeightRecordRepository {
	return &mongoWeightRecordRepository{
		collection: db.Collection(weightRecordCollectionName),
	}
}

// Create appends a weight sample. Records are never updated afterwards.
func (r *mongoWeightRecordRepository) Create(ctx context.Context, rec *domain.WeightRecord) (primitive.ObjectID, error) {
	if rec.UserID.IsZero() {
		return primitive.NilObjectID, errors.New("user ID is required")
	}

	rec.ID = primitive.NewObjectID()
	if rec.Date.IsZero() {
		rec.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, rec)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Latest returns the newest sample, ordered by date then id so samples taken
// on the same day resolve to the most recently inserted one.
func (r *mongoWeightRecordRepository) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.WeightRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	var rec domain.WeightRecord
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// History returns all samples for a user, oldest first.
func (r *mongoWeightRecordRepository) History(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []domain.WeightRecord
	if err = cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteByUserID removes the full weight history on account deletion.
func (r *mongoWeightRecordRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// EnsureWeightRecordIndexes creates indexes for the weight_records collection.
func EnsureWeightRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
