package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/database"
	"github.com/eduport/eduport-backend/internal/handler"
	"github.com/eduport/eduport-backend/internal/logger"
	"github.com/eduport/eduport-backend/internal/mail"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/otp"
	"github.com/eduport/eduport-backend/internal/repository"
	"github.com/eduport/eduport-backend/internal/router"
	"github.com/eduport/eduport-backend/internal/service"
	"github.com/eduport/eduport-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EduPort Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	db, closeMongo, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := closeMongo(context.Background()); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect error")
		}
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure MongoDB indexes")
	}

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// ─── Initialize Services ──────────────────────────────────────────
	// Each flow owns its pending store so a code staged by one flow can
	// never be consumed through another flow's verify endpoint.
	studentPending := otp.NewStore()
	facultyPending := otp.NewStore()
	adminPending := otp.NewStore()
	mailer := mail.NewSMTPMailer(cfg)

	authService := service.NewAuthService(cfg)
	studentFlow := service.NewAccountFlow(
		service.RoleProfile{
			Role:      model.RoleStudent,
			OTPDigits: cfg.OTPDigits,
			Finalize: func(acct model.Account, now time.Time) {
				if s, ok := acct.(*model.Student); ok {
					s.SeedDefaults(now)
				}
			},
		},
		studentRepo, studentPending, mailer, authService, cfg, log,
	)
	facultyFlow := service.NewAccountFlow(
		service.RoleProfile{
			Role:      model.RoleFaculty,
			OTPDigits: cfg.OTPDigits,
			Finalize: func(acct model.Account, now time.Time) {
				if f, ok := acct.(*model.Faculty); ok {
					f.SeedDefaults(now)
				}
			},
		},
		facultyRepo, facultyPending, mailer, authService, cfg, log,
	)
	adminService := service.NewAdminService(adminPending, mailer, authService, cfg, log)
	profileService := service.NewProfileService(studentRepo, facultyRepo, log)
	courseService := service.NewCourseService(courseRepo, rdb, cfg, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	adminUserService := service.NewAdminUserService(studentRepo, facultyRepo, log)

	if !cfg.AdminEnabled() {
		log.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD not set; admin login disabled")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(studentFlow, facultyFlow, profileService),
		Admin:      handler.NewAdminHandler(adminService, adminUserService, cfg),
		Profile:    handler.NewProfileHandler(profileService),
		Course:     handler.NewCourseHandler(courseService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Feedback:   handler.NewFeedbackHandler(feedbackService, profileService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
