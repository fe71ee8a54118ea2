// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"nextstep/internal/auth"
	"nextstep/internal/cache"
	"nextstep/internal/config"
	"nextstep/internal/database"
	"nextstep/internal/middleware"
	"nextstep/internal/payments"
	"nextstep/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	tokens          *auth.TokenService
	payments        payments.Provider
	userRepo        repository.UserRepository
	scholarshipRepo repository.ScholarshipRepository
	applicationRepo repository.ApplicationRepository
	reviewRepo      repository.ReviewRepository
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	tokens := auth.NewTokenService(cfg.JWTSecret)
	middleware.InitMiddleware(tokens)

	server := &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		tokens:          tokens,
		payments:        payments.NewStripeProvider(cfg.StripeSecretKey),
		userRepo:        repository.NewUserRepository(db),
		scholarshipRepo: repository.NewScholarshipRepository(db),
		applicationRepo: repository.NewApplicationRepository(db),
		reviewRepo:      repository.NewReviewRepository(db),
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Recover from handler panics with a 500 instead of dropping the connection
	app.Use(recover.New())

	// OpenTelemetry request spans
	app.Use(middleware.TracingMiddleware())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Prometheus HTTP metrics
	prom := fiberprometheus.New("nextstep-api")
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health check
	app.Get("/", s.HealthCheck)

	// Token issuance
	app.Post("/jwt", middleware.RateLimit(s.redis, 20, time.Minute, "jwt"), s.CreateToken)

	// Users
	app.Post("/save-user/:email", s.SaveUser)
	app.Get("/all-users/:email", middleware.AuthRequired, s.GetAllUsers)
	app.Get("/user-role/:email", middleware.AuthRequired, s.GetUserRole)
	app.Get("/user/:email", s.GetUser)
	app.Patch("/update-user/:email", middleware.AuthRequired, s.UpdateUser)
	app.Patch("/update-role/:email", middleware.AuthRequired, s.UpdateRole)
	app.Delete("/delete-user/:id", middleware.AuthRequired, s.DeleteUser)

	// Scholarships
	app.Post("/add-scholarship", middleware.AuthRequired, s.AddScholarship)
	app.Get("/scholarships", s.GetScholarships)
	app.Get("/top-scholarships", s.GetTopScholarships)
	app.Get("/total-scholarships", s.GetTotalScholarships)
	app.Get("/scholarship-admin-access", middleware.AuthRequired, s.GetScholarshipAdminAccess)
	app.Get("/scholarship/:id", s.GetScholarship)
	app.Put("/update-scholarship/:id", middleware.AuthRequired, s.UpdateScholarship)
	app.Delete("/delete-scholarship/:id", middleware.AuthRequired, s.DeleteScholarship)

	// Payments
	app.Post("/create-payment-intent", middleware.AuthRequired,
		middleware.RateLimit(s.redis, 10, time.Minute, "payment"), s.CreatePaymentIntent)

	// Applications
	app.Post("/applied-scholarships", middleware.AuthRequired, s.CreateApplication)
	app.Get("/my-applications/:email", middleware.AuthRequired, s.GetMyApplications)
	app.Get("/applied-scholarships", middleware.AuthRequired, s.GetAllApplications)
	app.Get("/applied-scholarship/:id", middleware.AuthRequired, s.GetApplication)
	app.Patch("/update-application/:id", middleware.AuthRequired, s.UpdateApplication)
	app.Patch("/change-status/:id", middleware.AuthRequired, s.ChangeStatus)
	app.Delete("/delete-application/:id", middleware.AuthRequired, s.DeleteApplication)
	app.Patch("/add-feedback/:id", middleware.AuthRequired, s.AddFeedback)

	// Reviews
	app.Post("/add-review/:id", middleware.AuthRequired, s.AddReview)
	app.Get("/reviews", middleware.AuthRequired, s.GetReviews)
	app.Get("/my-reviews/:email", middleware.AuthRequired, s.GetMyReviews)
	app.Get("/reviews/:id", middleware.AuthRequired, s.GetScholarshipReviews)
	app.Get("/my-review/:id", middleware.AuthRequired, s.GetMyReview)
	app.Patch("/update-review/:id", middleware.AuthRequired, s.UpdateReview)
	app.Delete("/delete-review/:id", middleware.AuthRequired, s.DeleteReview)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Hello from NextStep Scholarships Server..",
		"status":  "healthy",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "NextStep Scholarships API",
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("NextStep Scholarships is running on port %s", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully releases server resources
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
