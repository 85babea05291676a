package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/response"
	"github.com/eduport/eduport-backend/internal/service"
	"github.com/eduport/eduport-backend/internal/validator"
)

// AuthHandler handles the student and faculty credential endpoints.
type AuthHandler struct {
	studentFlow    *service.AccountFlow
	facultyFlow    *service.AccountFlow
	profileService *service.ProfileService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	studentFlow *service.AccountFlow,
	facultyFlow *service.AccountFlow,
	profileService *service.ProfileService,
) *AuthHandler {
	return &AuthHandler{
		studentFlow:    studentFlow,
		facultyFlow:    facultyFlow,
		profileService: profileService,
	}
}

// setTokenCookie attaches the session token as an HTTP-only cookie whose
// max-age matches the token's lifetime.
func setTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie("token", token, int(ttl.Seconds()), "/", "", false, true)
}

// failFlow translates flow sentinels into the response taxonomy.
func failFlow(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOTPNotFound):
		response.Fail(c, http.StatusBadRequest, response.ErrOTPNotFound)
	case errors.Is(err, service.ErrOTPExpired):
		response.Fail(c, http.StatusBadRequest, response.ErrOTPExpired)
	case errors.Is(err, service.ErrOTPMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrOTPInvalid)
	case errors.Is(err, service.ErrAccountNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrSamePassword):
		response.Fail(c, http.StatusBadRequest, response.ErrSamePassword)
	case errors.Is(err, service.ErrDuplicateAccount):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrDeliveryFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrDeliveryFailed)
	case errors.Is(err, service.ErrAdminDisabled):
		response.Fail(c, http.StatusForbidden, response.ErrAdminDisabled)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// RegisterStudent godoc
// POST /api/v1/auth/student-register
// Stages the registration and emails a verification code.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req model.RegisterStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student := &model.Student{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		CollegeRoll:  req.CollegeRoll,
		ProfilePhoto: req.ProfilePhoto,
	}
	masked, err := h.studentFlow.StartRegistration(c.Request.Context(), student, req.Password)
	if err != nil {
		failFlow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Verification code sent.", gin.H{"email": masked})
}

// VerifyStudentRegistration godoc
// POST /api/v1/auth/student-register-verify-otp
// Confirms the code, persists the account, and issues a session.
func (h *AuthHandler) VerifyStudentRegistration(c *gin.Context) {
	var req model.VerifyOTPRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, acct, err := h.studentFlow.VerifyRegistration(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.studentFlow.VerifiedTTL())
	response.Success(c, http.StatusCreated, "Registration complete.", gin.H{
		"token":   token,
		"student": acct,
	})
}

// LoginStudent godoc
// POST /api/v1/auth/student-login
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, acct, err := h.studentFlow.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.studentFlow.LoginTTL(req.Remember))
	response.Success(c, http.StatusOK, "Login successful.", gin.H{
		"token":   token,
		"student": acct,
	})
}

// ForgotStudentPassword godoc
// POST /api/v1/auth/student/forgot-password/verify-email
func (h *AuthHandler) ForgotStudentPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	masked, err := h.studentFlow.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		failFlow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Reset code sent.", gin.H{"email": masked})
}

// ResetStudentPassword godoc
// POST /api/v1/auth/student/forgot-password/reset-password
func (h *AuthHandler) ResetStudentPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.studentFlow.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.studentFlow.VerifiedTTL())
	response.Success(c, http.StatusOK, "Password reset.", gin.H{"token": token})
}

// CheckUsername godoc
// GET /api/v1/auth/student/register/check-username?username=...
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"username": "username is a required field",
		})
		return
	}

	available, err := h.profileService.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"available": available})
}

// CheckEmail godoc
// POST /api/v1/auth/student/register/check-email
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req model.CheckEmailRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	available, err := h.profileService.EmailAvailable(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"available": available})
}

// RegisterFaculty godoc
// POST /api/v1/auth/faculty-register
func (h *AuthHandler) RegisterFaculty(c *gin.Context) {
	var req model.RegisterFacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty := &model.Faculty{
		Name:      req.Name,
		Email:     req.Email,
		FacultyID: req.FacultyID,
		Photo:     req.Photo,
	}
	masked, err := h.facultyFlow.StartRegistration(c.Request.Context(), faculty, req.Password)
	if err != nil {
		failFlow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Verification code sent.", gin.H{"email": masked})
}

// VerifyFacultyRegistration godoc
// POST /api/v1/auth/faculty-register-verify-otp
func (h *AuthHandler) VerifyFacultyRegistration(c *gin.Context) {
	var req model.VerifyOTPRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, acct, err := h.facultyFlow.VerifyRegistration(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.facultyFlow.VerifiedTTL())
	response.Success(c, http.StatusCreated, "Registration complete.", gin.H{
		"token":   token,
		"faculty": acct,
	})
}

// LoginFaculty godoc
// POST /api/v1/auth/faculty-login
func (h *AuthHandler) LoginFaculty(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, acct, err := h.facultyFlow.Login(c.Request.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.facultyFlow.LoginTTL(req.Remember))
	response.Success(c, http.StatusOK, "Login successful.", gin.H{
		"token":   token,
		"faculty": acct,
	})
}

// ForgotFacultyPassword godoc
// POST /api/v1/auth/faculty/forgot-password/verify-email
func (h *AuthHandler) ForgotFacultyPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	masked, err := h.facultyFlow.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		failFlow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Reset code sent.", gin.H{"email": masked})
}

// ResetFacultyPassword godoc
// POST /api/v1/auth/faculty/forgot-password/reset-password
func (h *AuthHandler) ResetFacultyPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.facultyFlow.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.facultyFlow.VerifiedTTL())
	response.Success(c, http.StatusOK, "Password reset.", gin.H{"token": token})
}
