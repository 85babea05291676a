package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// ErrInvalidDate is returned when an attendance date is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// AttendanceService records and corrects per-session attendance. Marking is
// a faculty operation; the marker's id is stamped onto every record.
type AttendanceService struct {
	records *repository.AttendanceRepository
	log     zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(records *repository.AttendanceRepository, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		records: records,
		log:     log.With().Str("component", "attendance_service").Logger(),
	}
}

// Mark records one session outcome for one student.
func (s *AttendanceService) Mark(ctx context.Context, req *model.MarkAttendanceRequest, markedBy string) (*model.AttendanceRecord, error) {
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return nil, ErrInvalidID
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return nil, ErrInvalidID
	}
	markerID, err := primitive.ObjectIDFromHex(markedBy)
	if err != nil {
		return nil, ErrInvalidID
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	rec := &model.AttendanceRecord{
		CourseID:  courseID,
		StudentID: studentID,
		Date:      date.UTC(),
		Status:    model.AttendanceStatus(req.Status),
		MarkedBy:  markerID,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.records.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	s.log.Info().
		Str("student_id", req.StudentID).
		Str("course_id", req.CourseID).
		Str("status", req.Status).
		Msg("Attendance marked")
	return rec, nil
}

// ListByStudent returns every marked session for one student.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string) ([]model.AttendanceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.records.ListByStudent(ctx, oid)
}

// ListByCourse returns every marked session for one course.
func (s *AttendanceService) ListByCourse(ctx context.Context, courseID string) ([]model.AttendanceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.records.ListByCourse(ctx, oid)
}

// Correct replaces the status of a previously marked session.
func (s *AttendanceService) Correct(ctx context.Context, id string, status model.AttendanceStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	return s.records.UpdateStatus(ctx, oid, status)
}
