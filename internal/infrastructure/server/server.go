package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/twinbot/core/internal/adapters/http"
	"github.com/twinbot/core/internal/adapters/repository"
	"github.com/twinbot/core/internal/adapters/webfetch"
	"github.com/twinbot/core/internal/application/services"
	"github.com/twinbot/core/internal/infrastructure/config"
	"github.com/twinbot/core/internal/infrastructure/database"
	"github.com/twinbot/core/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	store, err := repository.NewStore(cfg.Data.Dir, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	studentRepo := repository.NewStudentRepository(store)
	secretaryRepo := repository.NewSecretaryRepository(store)
	familyRepo := repository.NewFamilyRepository(store)
	profileRepo := repository.NewProfileRepository(store)
	researchRepo := repository.NewResearchRepository(db)
	studyRepo := repository.NewStudyRepository(cfg.Data.Dir, appLogger)

	// Initialize services
	fetchClient := webfetch.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	studentService := services.NewStudentService(studentRepo, appLogger)
	secretaryService := services.NewSecretaryService(secretaryRepo, appLogger)
	familyService := services.NewFamilyService(familyRepo, appLogger)
	profileService := services.NewProfileService(profileRepo, appLogger)
	researchService := services.NewResearchService(researchRepo, fetchClient, appLogger)
	studyService := services.NewStudyService(studyRepo, appLogger)
	briefingService := services.NewBriefingService(studentRepo, secretaryRepo, familyRepo, profileRepo, researchService, appLogger)

	// Initialize handlers
	briefingHandler := httpHandlers.NewBriefingHandler(briefingService, appLogger)
	studentHandler := httpHandlers.NewStudentHandler(studentService, appLogger)
	secretaryHandler := httpHandlers.NewSecretaryHandler(secretaryService, appLogger)
	familyHandler := httpHandlers.NewFamilyHandler(familyService, appLogger)
	researchHandler := httpHandlers.NewResearchHandler(researchService, appLogger)
	profileHandler := httpHandlers.NewProfileHandler(profileService, appLogger)
	studyHandler := httpHandlers.NewStudyHandler(studyService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(briefingHandler, studentHandler, secretaryHandler, familyHandler, researchHandler, profileHandler, studyHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	briefingHandler *httpHandlers.BriefingHandler,
	studentHandler *httpHandlers.StudentHandler,
	secretaryHandler *httpHandlers.SecretaryHandler,
	familyHandler *httpHandlers.FamilyHandler,
	researchHandler *httpHandlers.ResearchHandler,
	profileHandler *httpHandlers.ProfileHandler,
	studyHandler *httpHandlers.StudyHandler,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Daily briefing
	v1.GET("/briefing", briefingHandler.GetBriefing)
	v1.GET("/stats", briefingHandler.GetStats)

	// Class schedule
	scheduleGroup := v1.Group("/schedule")
	scheduleGroup.GET("", studentHandler.ListSchedule)
	scheduleGroup.POST("", studentHandler.AddClass)
	scheduleGroup.GET("/today", studentHandler.TodaysClasses)
	scheduleGroup.DELETE("/:course", studentHandler.RemoveClass)

	// Assignments
	assignmentGroup := v1.Group("/assignments")
	assignmentGroup.GET("", studentHandler.ListAssignments)
	assignmentGroup.POST("", studentHandler.AddAssignment)
	assignmentGroup.POST("/complete", studentHandler.CompleteAssignment)
	assignmentGroup.GET("/deadlines", studentHandler.UpcomingDeadlines)

	// Grades
	gradeGroup := v1.Group("/grades")
	gradeGroup.GET("", studentHandler.ListGrades)
	gradeGroup.POST("", studentHandler.AddGrade)
	gradeGroup.GET("/gpa", studentHandler.GetGPA)

	// Exams
	examGroup := v1.Group("/exams")
	examGroup.GET("", studentHandler.ListExams)
	examGroup.POST("", studentHandler.AddExam)
	examGroup.GET("/upcoming", studentHandler.UpcomingExams)

	// Todos
	todoGroup := v1.Group("/todos")
	todoGroup.GET("", secretaryHandler.ListTodos)
	todoGroup.POST("", secretaryHandler.AddTodo)
	todoGroup.GET("/progress", secretaryHandler.TodoProgress)
	todoGroup.POST("/:index/complete", secretaryHandler.CompleteTodo)
	todoGroup.DELETE("/:index", secretaryHandler.DeleteTodo)

	// Notes
	noteGroup := v1.Group("/notes")
	noteGroup.GET("", secretaryHandler.ListNotes)
	noteGroup.POST("", secretaryHandler.AddNote)
	noteGroup.DELETE("/:index", secretaryHandler.DeleteNote)

	// Reminders
	reminderGroup := v1.Group("/reminders")
	reminderGroup.GET("", secretaryHandler.ListReminders)
	reminderGroup.POST("", secretaryHandler.AddReminder)
	reminderGroup.GET("/today", secretaryHandler.TodaysReminders)
	reminderGroup.DELETE("/:index", secretaryHandler.DeleteReminder)

	// Contacts
	contactGroup := v1.Group("/contacts")
	contactGroup.GET("", secretaryHandler.ListContacts)
	contactGroup.POST("", secretaryHandler.AddContact)

	// Daily planner
	planGroup := v1.Group("/plan")
	planGroup.GET("", secretaryHandler.GetPlan)
	planGroup.POST("", secretaryHandler.AddPlanItem)
	planGroup.POST("/:index/complete", secretaryHandler.CompletePlanItem)

	// Family
	familyGroup := v1.Group("/family")
	familyGroup.GET("/members", familyHandler.ListMembers)
	familyGroup.POST("/members", familyHandler.AddMember)
	familyGroup.GET("/events", familyHandler.ListEvents)
	familyGroup.POST("/events", familyHandler.AddEvent)
	familyGroup.GET("/events/upcoming", familyHandler.UpcomingEvents)
	familyGroup.GET("/errands", familyHandler.ListErrands)
	familyGroup.POST("/errands", familyHandler.AddErrand)
	familyGroup.POST("/errands/:index/complete", familyHandler.CompleteErrand)
	familyGroup.GET("/gifts", familyHandler.ListGifts)
	familyGroup.POST("/gifts", familyHandler.AddGift)
	familyGroup.GET("/gifts/suggestions", familyHandler.GiftSuggestions)

	// Research
	researchGroup := v1.Group("/research")
	researchGroup.GET("/weather", researchHandler.GetWeather)
	researchGroup.GET("/wiki", researchHandler.Wikipedia)
	researchGroup.GET("/fact", researchHandler.QuickFact)
	researchGroup.GET("/define/:word", researchHandler.Define)
	researchGroup.GET("/news", researchHandler.ListNewsSources)
	researchGroup.GET("/news/:source", researchHandler.GetHeadlines)
	researchGroup.GET("/history", researchHandler.GetHistory)
	researchGroup.GET("/bookmarks", researchHandler.ListBookmarks)
	researchGroup.POST("/bookmarks", researchHandler.AddBookmark)

	// Profile
	profileGroup := v1.Group("/profile")
	profileGroup.GET("", profileHandler.GetProfile)
	profileGroup.PUT("", profileHandler.UpdateProfile)

	// Study habits
	studyGroup := v1.Group("/study")
	studyGroup.GET("/overview", studyHandler.GetOverview)
	studyGroup.GET("/classes", studyHandler.GetByClass)
	studyGroup.POST("/assess", studyHandler.Assess)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Research database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(*validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
