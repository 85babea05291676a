package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduport/eduport-backend/internal/middleware"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/response"
	"github.com/eduport/eduport-backend/internal/service"
	"github.com/eduport/eduport-backend/internal/validator"
)

// FeedbackHandler handles student feedback endpoints.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	profileService  *service.ProfileService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService, profileService *service.ProfileService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, profileService: profileService}
}

// Submit godoc
// POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitFeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	// The display name comes from the profile, not the client.
	student, err := h.profileService.GetStudent(c.Request.Context(), claims.Email)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), claims.UserID, student.Name, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, "Feedback submitted.", gin.H{"feedback": fb})
}

// List godoc
// GET /api/v1/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	feedbacks, err := h.feedbackService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"feedbacks": feedbacks})
}
