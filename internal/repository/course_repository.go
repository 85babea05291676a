package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/model"
)

// CourseRepository handles course document access.
type CourseRepository struct {
	col *mongo.Collection
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(database.CollectionCourses)}
}

// GetByID retrieves one course.
func (r *CourseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Course, error) {
	var c model.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &c, nil
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	courses := []model.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

// Insert persists a new course and returns its generated id.
func (r *CourseRepository) Insert(ctx context.Context, course *model.Course) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert course: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert course: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

// Update replaces the mutable fields of a course. Returns ErrNotFound when
// no document matched.
func (r *CourseRepository) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes a course. Returns ErrNotFound when no document matched.
func (r *CourseRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
