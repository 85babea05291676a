package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// UserDirectory is the combined listing the admin surface works with.
type UserDirectory struct {
	Students  []model.Student `json:"students"`
	Faculties []model.Faculty `json:"faculties"`
}

// AdminUserService gives the operator a combined view over both account
// collections, plus removal.
type AdminUserService struct {
	students  *repository.StudentRepository
	faculties *repository.FacultyRepository
	log       zerolog.Logger
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(students *repository.StudentRepository, faculties *repository.FacultyRepository, log zerolog.Logger) *AdminUserService {
	return &AdminUserService{
		students:  students,
		faculties: faculties,
		log:       log.With().Str("component", "admin_user_service").Logger(),
	}
}

// List returns every student and faculty account.
func (s *AdminUserService) List(ctx context.Context) (*UserDirectory, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	faculties, err := s.faculties.List(ctx)
	if err != nil {
		return nil, err
	}
	return &UserDirectory{Students: students, Faculties: faculties}, nil
}

// Delete removes the account with id from whichever collection holds it. The
// student collection is tried first; a miss there falls through to faculty.
func (s *AdminUserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	err = s.students.DeleteByID(ctx, oid)
	if err == nil {
		s.log.Info().Str("user_id", id).Msg("Student account deleted")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.faculties.DeleteByID(ctx, oid); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("Faculty account deleted")
	return nil
}
