package service

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
)

// ProfileService serves the authenticated user's own profile for both roles.
type ProfileService struct {
	students  *repository.StudentRepository
	faculties *repository.FacultyRepository
	log       zerolog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(students *repository.StudentRepository, faculties *repository.FacultyRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		students:  students,
		faculties: faculties,
		log:       log.With().Str("component", "profile_service").Logger(),
	}
}

// GetStudent returns the student profile for email.
func (s *ProfileService) GetStudent(ctx context.Context, email string) (*model.Student, error) {
	return s.students.GetByEmail(ctx, email)
}

// GetFaculty returns the faculty profile for email.
func (s *ProfileService) GetFaculty(ctx context.Context, email string) (*model.Faculty, error) {
	return s.faculties.GetByEmail(ctx, email)
}

// UpdateStudent applies the non-empty fields of req to the student matched
// by email and returns the updated profile.
func (s *ProfileService) UpdateStudent(ctx context.Context, email string, req *model.UpdateStudentProfileRequest) (*model.Student, error) {
	patch := bson.M{}
	setIf(patch, "fName", req.Name)
	setIf(patch, "username", req.Username)
	setIf(patch, "phone", req.Phone)
	setIf(patch, "bloodGroup", req.BloodGroup)
	setIf(patch, "location", req.Location)
	setIf(patch, "dateOfBirth", req.DateOfBirth)
	setIf(patch, "bio", req.Bio)
	setIf(patch, "department", req.Department)
	setIf(patch, "session", req.Session)
	setIf(patch, "registrationNumber", req.RegistrationNo)
	setIf(patch, "profilePhoto", req.ProfilePhoto)
	setIf(patch, "cover", req.CoverPhoto)
	if req.Skills != nil {
		patch["skills"] = req.Skills
	}
	if req.Certifications != nil {
		patch["certifications"] = req.Certifications
	}

	if len(patch) == 0 {
		return s.students.GetByEmail(ctx, email)
	}

	updated, err := s.students.UpdateProfile(ctx, email, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("email", MaskEmail(email)).Int("fields", len(patch)).Msg("Student profile updated")
	return updated, nil
}

// UsernameAvailable reports whether no student holds the username yet.
// Backs the pre-registration availability check.
func (s *ProfileService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.students.UsernameTaken(ctx, username)
	return !taken, err
}

// EmailAvailable reports whether no student holds the email yet.
func (s *ProfileService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.students.EmailTaken(ctx, email)
	return !taken, err
}

func setIf(patch bson.M, key, value string) {
	if value != "" {
		patch[key] = value
	}
}
