package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/database"
	"github.com/aks1489/icstconnect-sub000/internal/handler"
	"github.com/aks1489/icstconnect-sub000/internal/logger"
	"github.com/aks1489/icstconnect-sub000/internal/repository"
	"github.com/aks1489/icstconnect-sub000/internal/router"
	"github.com/aks1489/icstconnect-sub000/internal/service"
	"github.com/aks1489/icstconnect-sub000/internal/validator"
	"github.com/aks1489/icstconnect-sub000/internal/worker"
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
		Bool("eager_materialize", cfg.EagerMaterialize).
		Msg("Starting ICST Connect Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	ruleRepo := repository.NewScheduleRuleRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	courseService := service.NewCourseService(courseRepo)
	classService := service.NewClassService(classRepo)
	studentService := service.NewStudentService(studentRepo, authService)
	staffService := service.NewStaffService(staffRepo, authService)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo)
	calendarService := service.NewCalendarService(eventRepo, ruleRepo, enrollmentRepo, log)
	scheduleService := service.NewScheduleService(ruleRepo, eventRepo, courseRepo, classRepo, rdb, log)
	eventService := service.NewEventService(eventRepo, courseRepo, classRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, studentService, staffService),
		Calendar:    handler.NewCalendarHandler(calendarService),
		Course:      handler.NewCourseHandler(courseService, classService),
		Class:       handler.NewClassHandler(classService),
		StudentMgmt: handler.NewStudentManagementHandler(studentService, authService),
		Staff:       handler.NewStaffHandler(staffService),
		Enrollment:  handler.NewEnrollmentHandler(enrollmentService),
		Event:       handler.NewEventHandler(eventService),
		Schedule:    handler.NewScheduleHandler(scheduleService, cfg),
		WS:          handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
		System:      handler.NewSystemHandler(rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reconcileWorker := worker.NewReconcileWorker(scheduleService, rdb, log)
	go reconcileWorker.Start(workerCtx)

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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
