package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// FeedbackService records student feedback and lists it for admins.
type FeedbackService struct {
	feedbacks *repository.FeedbackRepository
	log       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedbacks *repository.FeedbackRepository, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		log:       log.With().Str("component", "feedback_service").Logger(),
	}
}

// Submit stores one feedback entry for the authenticated student.
func (s *FeedbackService) Submit(ctx context.Context, studentID, studentName string, req *model.SubmitFeedbackRequest) (*model.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, ErrInvalidID
	}

	fb := &model.Feedback{
		StudentID:   oid,
		StudentName: studentName,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.feedbacks.Insert(ctx, fb)
	if err != nil {
		return nil, err
	}
	fb.ID = id

	s.log.Info().Str("student_id", studentID).Int("rating", req.Rating).Msg("Feedback submitted")
	return fb, nil
}

// List returns all feedback entries.
func (s *FeedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	return s.feedbacks.List(ctx)
}
