package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/model"
)

// AttendanceRepository handles attendance document access.
type AttendanceRepository struct {
	col *mongo.Collection
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(database.CollectionAttendance)}
}

// Insert records one marked class session.
func (r *AttendanceRepository) Insert(ctx context.Context, rec *model.AttendanceRecord) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert attendance: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert attendance: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

// ListByStudent retrieves every session marked for one student.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]model.AttendanceRecord, error) {
	return r.list(ctx, bson.M{"studentId": studentID})
}

// ListByCourse retrieves every session marked for one course.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]model.AttendanceRecord, error) {
	return r.list(ctx, bson.M{"courseId": courseID})
}

func (r *AttendanceRepository) list(ctx context.Context, filter bson.M) ([]model.AttendanceRecord, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	records := []model.AttendanceRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return records, nil
}

// UpdateStatus corrects the status of one marked session. Returns
// ErrNotFound when no document matched.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.AttendanceStatus) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
