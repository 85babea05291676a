package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/repository"
	"github.com/eduport/eduport-backend/internal/response"
	"github.com/eduport/eduport-backend/internal/service"
	"github.com/eduport/eduport-backend/internal/validator"
)

// AdminHandler handles the operator login and the user directory.
type AdminHandler struct {
	adminService *service.AdminService
	userService  *service.AdminUserService
	cfg          *config.Config
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, userService *service.AdminUserService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
		cfg:          cfg,
	}
}

// Login godoc
// POST /api/v1/auth/admin-login
// Checks the shared secret and dispatches the operator code.
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	masked, err := h.adminService.StartLogin(req.Password)
	if err != nil {
		failFlow(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Verification code sent.", gin.H{"email": masked})
}

// VerifyLogin godoc
// POST /api/v1/auth/admin-login/verify-otp
func (h *AdminHandler) VerifyLogin(c *gin.Context) {
	var req model.AdminVerifyOTPRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.adminService.VerifyLogin(req.OTP)
	if err != nil {
		failFlow(c, err)
		return
	}

	setTokenCookie(c, token, h.cfg.AdminTTL)
	response.Success(c, http.StatusOK, "Login successful.", gin.H{"token": token})
}

// ListUsers godoc
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	directory, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, "", directory)
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.userService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, "User deleted.", gin.H{})
}
