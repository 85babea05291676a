package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduport/eduport-backend/internal/middleware"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
	"github.com/eduport/eduport-backend/internal/response"
	"github.com/eduport/eduport-backend/internal/service"
	"github.com/eduport/eduport-backend/internal/validator"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile godoc
// GET /api/v1/profile/student-profile
// Returns the caller's profile, student or faculty per token role.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	switch claims.Role {
	case model.RoleStudent:
		student, err := h.profileService.GetStudent(c.Request.Context(), claims.Email)
		if err != nil {
			failProfile(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"student": student})
	case model.RoleFaculty:
		faculty, err := h.profileService.GetFaculty(c.Request.Context(), claims.Email)
		if err != nil {
			failProfile(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"faculty": faculty})
	default:
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	}
}

// UpdateProfile godoc
// PUT /api/v1/profile/update-profile
// Applies the provided fields to the caller's student profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	if claims.Role != model.RoleStudent {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	var req model.UpdateStudentProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.profileService.UpdateStudent(c.Request.Context(), claims.Email, &req)
	if err != nil {
		failProfile(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated.", gin.H{"student": student})
}

func failProfile(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
