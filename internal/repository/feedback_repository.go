package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/model"
)

// FeedbackRepository handles feedback document access.
type FeedbackRepository struct {
	col *mongo.Collection
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(database.CollectionFeedbacks)}
}

// List retrieves all feedback entries.
func (r *FeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	feedbacks := []model.Feedback{}
	if err := cur.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("decode feedbacks: %w", err)
	}
	return feedbacks, nil
}

// Insert persists one feedback entry.
func (r *FeedbackRepository) Insert(ctx context.Context, fb *model.Feedback) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, fb)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert feedback: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert feedback: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}
