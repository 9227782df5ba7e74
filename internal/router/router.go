package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/handler"
	"github.com/aks1489/icstconnect-sub000/internal/middleware"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Calendar    *handler.CalendarHandler
	Course      *handler.CourseHandler
	Class       *handler.ClassHandler
	StudentMgmt *handler.StudentManagementHandler
	Staff       *handler.StaffHandler
	Enrollment  *handler.EnrollmentHandler
	Event       *handler.EventHandler
	Schedule    *handler.ScheduleHandler
	WS          *handler.WSHandler
	System      *handler.SystemHandler
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

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	// The course catalog is the institute's public face; cache it briefly.
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(300))
	{
		publicAPI.GET("/courses", handlers.Course.ListCourses)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/staff/login", handlers.Auth.StaffLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/staff/me", middleware.RequireStaffJWT(authService), handlers.Auth.GetStaffProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/calendar", handlers.Calendar.GetWeek)
		studentAPI.GET("/enrollments", handlers.Enrollment.ListMyEnrollments)
	}

	// ─── 3. Staff Group (teacher or admin JWT) ─────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(middleware.RequireStaffJWT(authService))
	{
		staffAPI.GET("/calendar", handlers.Calendar.GetWeek)
		staffAPI.GET("/classes", handlers.Class.ListClasses)
		staffAPI.GET("/courses", handlers.Course.ListCourses)
		staffAPI.GET("/courses/:id", handlers.Course.GetCourse)
	}

	// ─── 4. WebSocket Group (student or staff WS Auth) ─────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/calendar/stream", handlers.WS.CalendarStream)
	}

	// ─── 5. Admin Group (staff JWT + admin role) ───────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireStaffJWT(authService),
		middleware.RequireRole("admin"),
	)
	{
		// Course catalog
		adminAPI.GET("/courses", handlers.Course.ListCourses)
		adminAPI.GET("/courses/:id", handlers.Course.GetCourse)
		adminAPI.POST("/courses", handlers.Course.CreateCourse)
		adminAPI.PUT("/courses/:id", handlers.Course.UpdateCourse)
		adminAPI.DELETE("/courses/:id", handlers.Course.DeleteCourse)

		// Class management
		adminAPI.GET("/classes", handlers.Class.ListClasses)
		adminAPI.POST("/classes", handlers.Class.CreateClass)
		adminAPI.PUT("/classes/:id", handlers.Class.UpdateClass)
		adminAPI.DELETE("/classes/:id", handlers.Class.DeleteClass)

		// Student management
		adminAPI.GET("/students", handlers.StudentMgmt.ListStudents)
		adminAPI.POST("/students", handlers.StudentMgmt.CreateStudent)
		adminAPI.PUT("/students/:id", handlers.StudentMgmt.UpdateStudent)
		adminAPI.DELETE("/students/:id", handlers.StudentMgmt.DeleteStudent)
		adminAPI.POST("/students/:id/reset-session", handlers.StudentMgmt.ResetStudentSession)

		// Staff management
		adminAPI.GET("/staff", handlers.Staff.ListStaff)
		adminAPI.POST("/staff", handlers.Staff.CreateStaff)
		adminAPI.PUT("/staff/:id", handlers.Staff.UpdateStaff)
		adminAPI.DELETE("/staff/:id", handlers.Staff.DeleteStaff)

		// Enrollments
		adminAPI.GET("/enrollments", handlers.Enrollment.ListEnrollments)
		adminAPI.POST("/enrollments", handlers.Enrollment.CreateEnrollment)
		adminAPI.PUT("/enrollments/:id", handlers.Enrollment.UpdateEnrollment)
		adminAPI.DELETE("/enrollments/:id", handlers.Enrollment.DeleteEnrollment)

		// Schedule rules
		adminAPI.GET("/schedule-rules", handlers.Schedule.ListRules)
		adminAPI.GET("/schedule-rules/:id", handlers.Schedule.GetRule)
		adminAPI.POST("/schedule-rules", handlers.Schedule.CreateRule)
		adminAPI.POST("/schedule-rules/:id/rematerialize", handlers.Schedule.RematerializeRule)
		adminAPI.DELETE("/schedule-rules/:id", handlers.Schedule.DeleteRule)

		// One-off events
		adminAPI.GET("/events", handlers.Event.ListEvents)
		adminAPI.POST("/events", handlers.Event.CreateEvent)
		adminAPI.POST("/events/extra-class", handlers.Event.CreateExtraClass)
		adminAPI.POST("/events/holiday", handlers.Event.CreateHoliday)
		adminAPI.DELETE("/events/:id", handlers.Event.DeleteEvent)

		// Admin calendar
		adminAPI.GET("/calendar", handlers.Calendar.GetWeek)

		// System Monitoring
		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	return router
}
