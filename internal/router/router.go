package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/handler"
	"github.com/eduport/eduport-backend/internal/middleware"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/response"
	"github.com/eduport/eduport-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Admin      *handler.AdminHandler
	Profile    *handler.ProfileHandler
	Course     *handler.CourseHandler
	Attendance *handler.AttendanceHandler
	Feedback   *handler.FeedbackHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "", gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes; keeps one client from flooding the mailer.
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student-register", handlers.Auth.RegisterStudent)
		auth.POST("/student-register-verify-otp", handlers.Auth.VerifyStudentRegistration)
		auth.POST("/student-login", handlers.Auth.LoginStudent)
		auth.POST("/student/forgot-password/verify-email", handlers.Auth.ForgotStudentPassword)
		auth.POST("/student/forgot-password/reset-password", handlers.Auth.ResetStudentPassword)
		auth.GET("/student/register/check-username", handlers.Auth.CheckUsername)
		auth.POST("/student/register/check-email", handlers.Auth.CheckEmail)

		auth.POST("/faculty-register", handlers.Auth.RegisterFaculty)
		auth.POST("/faculty-register-verify-otp", handlers.Auth.VerifyFacultyRegistration)
		auth.POST("/faculty-login", handlers.Auth.LoginFaculty)
		auth.POST("/faculty/forgot-password/verify-email", handlers.Auth.ForgotFacultyPassword)
		auth.POST("/faculty/forgot-password/reset-password", handlers.Auth.ResetFacultyPassword)

		auth.POST("/admin-login", handlers.Admin.Login)
		auth.POST("/admin-login/verify-otp", handlers.Admin.VerifyLogin)
	}

	// ─── 2. Profile Group (Any authenticated role) ─────────────────────
	profileAPI := router.Group("/api/v1/profile")
	profileAPI.Use(middleware.RequireAuth(authService))
	{
		profileAPI.GET("/student-profile", handlers.Profile.GetProfile)
		profileAPI.PUT("/update-profile", handlers.Profile.UpdateProfile)
	}

	// ─── 3. Course Group ───────────────────────────────────────────────
	courseAPI := router.Group("/api/v1/courses")
	courseAPI.Use(middleware.RequireAuth(authService))
	{
		courseAPI.GET("", handlers.Course.List)
		courseAPI.GET("/:id", handlers.Course.Get)

		staffOnly := middleware.RequireAuth(authService, model.RoleFaculty, model.RoleAdmin)
		courseAPI.POST("", staffOnly, handlers.Course.Create)
		courseAPI.PUT("/:id", staffOnly, handlers.Course.Update)
		courseAPI.DELETE("/:id", staffOnly, handlers.Course.Delete)
	}

	// ─── 4. Attendance Group ───────────────────────────────────────────
	attendanceAPI := router.Group("/api/v1/attendance")
	attendanceAPI.Use(middleware.RequireAuth(authService))
	{
		attendanceAPI.POST("",
			middleware.RequireAuth(authService, model.RoleFaculty),
			handlers.Attendance.Mark,
		)
		attendanceAPI.GET("/student/:id", handlers.Attendance.ListByStudent)
		attendanceAPI.GET("/course/:id",
			middleware.RequireAuth(authService, model.RoleFaculty, model.RoleAdmin),
			handlers.Attendance.ListByCourse,
		)
		attendanceAPI.PUT("/:id",
			middleware.RequireAuth(authService, model.RoleAdmin),
			handlers.Attendance.Correct,
		)
	}

	// ─── 5. Feedback Group ─────────────────────────────────────────────
	feedbackAPI := router.Group("/api/v1/feedback")
	feedbackAPI.Use(middleware.RequireAuth(authService))
	{
		feedbackAPI.GET("", handlers.Feedback.List)
		feedbackAPI.POST("",
			middleware.RequireAuth(authService, model.RoleStudent),
			handlers.Feedback.Submit,
		)
	}

	// ─── 6. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(authService, model.RoleAdmin))
	{
		adminAPI.GET("/users", handlers.Admin.ListUsers)
		adminAPI.DELETE("/users/:id", handlers.Admin.DeleteUser)
	}

	return router
}
