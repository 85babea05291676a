package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// ErrInvalidID is returned for identifiers that are not valid object ids.
var ErrInvalidID = errors.New("invalid id")

const courseListKey = "courses:list"

// CourseService handles course catalog logic and its Redis read cache. The
// catalog is read-heavy and changes only through the admin endpoints, so the
// full list is cached and any write invalidates it.
type CourseService struct {
	courses *repository.CourseRepository
	rdb     *redis.Client
	cfg     *config.Config
	log     zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses *repository.CourseRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		rdb:     rdb,
		cfg:     cfg,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// List returns the full catalog, served from Redis when warm. Cache failures
// fall through to Mongo so the catalog stays readable without Redis.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	cached, err := s.rdb.Get(ctx, courseListKey).Result()
	if err == nil {
		var courses []model.Course
		if err := json.Unmarshal([]byte(cached), &courses); err == nil {
			return courses, nil
		}
		// Unreadable payload; rebuild below.
		_ = s.rdb.Del(ctx, courseListKey).Err()
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Course cache read failed")
	}

	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(courses); err == nil {
		if err := s.rdb.Set(ctx, courseListKey, payload, s.cfg.CourseCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Course cache write failed")
		}
	}
	return courses, nil
}

// GetByID returns a single course straight from Mongo.
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.courses.GetByID(ctx, oid)
}

// Create inserts a new Active course and invalidates the list cache.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	facultyID, err := primitive.ObjectIDFromHex(req.FacultyAssigned)
	if err != nil {
		return nil, ErrInvalidID
	}

	now := time.Now().UTC()
	course := &model.Course{
		Name:            req.Name,
		Code:            req.Code,
		Department:      req.Department,
		Description:     req.Description,
		Credits:         req.Credits,
		CreditsDetails:  req.CreditsDetails,
		FacultyAssigned: facultyID,
		Semester:        req.Semester,
		Schedule:        req.Schedule,
		AvailableSeats:  req.AvailableSeats,
		ClassTimes:      req.ClassTimes,
		Status:          model.CourseStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := s.courses.Insert(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	course.ID = id
	s.invalidate(ctx)

	s.log.Info().Str("course_id", id.Hex()).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// Update replaces a course's mutable fields and invalidates the list cache.
func (s *CourseService) Update(ctx context.Context, id string, req *model.UpdateCourseRequest) (*model.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	facultyID, err := primitive.ObjectIDFromHex(req.FacultyAssigned)
	if err != nil {
		return nil, ErrInvalidID
	}

	patch := bson.M{
		"courseName":      req.Name,
		"department":      req.Department,
		"description":     req.Description,
		"credits":         req.Credits,
		"creditsDetails":  req.CreditsDetails,
		"facultyAssigned": facultyID,
		"semester":        req.Semester,
		"schedule":        req.Schedule,
		"availableSeats":  req.AvailableSeats,
		"classTimes":      req.ClassTimes,
		"status":          model.CourseStatus(req.Status),
		"updatedAt":       time.Now().UTC(),
	}
	if err := s.courses.Update(ctx, oid, patch); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return s.courses.GetByID(ctx, oid)
}

// Delete removes a course and invalidates the list cache.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if err := s.courses.DeleteByID(ctx, oid); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Info().Str("course_id", id).Msg("Course deleted")
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if err := s.rdb.Del(ctx, courseListKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Course cache invalidation failed")
	}
}
