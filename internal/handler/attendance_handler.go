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

// AttendanceHandler handles per-session attendance endpoints.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark godoc
// POST /api/v1/attendance
// Faculty records one session outcome for one student.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.MarkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec, err := h.attendanceService.Mark(c.Request.Context(), &req, claims.UserID)
	if err != nil {
		failAttendance(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Attendance marked.", gin.H{"record": rec})
}

// ListByStudent godoc
// GET /api/v1/attendance/student/:id
// Students may read their own history; staff may read anyone's.
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	studentID := c.Param("id")
	if claims.Role == model.RoleStudent && claims.UserID != studentID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	records, err := h.attendanceService.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		failAttendance(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"records": records})
}

// ListByCourse godoc
// GET /api/v1/attendance/course/:id
func (h *AttendanceHandler) ListByCourse(c *gin.Context) {
	records, err := h.attendanceService.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		failAttendance(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"records": records})
}

// Correct godoc
// PUT /api/v1/attendance/:id
// Admin replaces a previously marked status.
func (h *AttendanceHandler) Correct(c *gin.Context) {
	var req model.UpdateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.attendanceService.Correct(c.Request.Context(), c.Param("id"), model.AttendanceStatus(req.Status))
	if err != nil {
		failAttendance(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Attendance updated.", gin.H{})
}

func failAttendance(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
	case errors.Is(err, service.ErrInvalidDate):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
