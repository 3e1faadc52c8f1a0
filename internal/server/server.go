// Package server contains the HTTP handlers for the blog REST API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "inkwell/docs" // swagger docs
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ServiceName labels the API's metrics and traces.
const ServiceName = "inkwell-api"

// Server holds the API's dependencies.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	postService    *service.PostService
	authorService  *service.AuthorService
}

// NewServer connects to the database and Redis and wires the API.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.InitRedis(cfg.RedisURL))
}

// NewServerWithDeps wires the API over an existing database and optional Redis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	postRepo := repository.NewPostRepository(db)
	authorRepo := repository.NewAuthorRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: observability.HTTPMetrics(ServiceName),
		postService:    service.NewPostService(postRepo, authorRepo),
		authorService:  service.NewAuthorService(authorRepo),
	}, nil
}

// NewApp builds a Fiber app with the API's routing rules. Trailing slashes
// are significant: collection and item paths always end in "/".
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Inkwell API",
		StrictRouting: true,
		ErrorHandler:  errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures the middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware(ServiceName))
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-Correlation-ID, traceparent, tracestate",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       86400,
	}))

	maxRequests := s.config.RateLimitMax
	if maxRequests <= 0 {
		maxRequests = 600
	}
	app.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures the API routes
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell API Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	writeLimit := s.config.WriteRateLimit
	if writeLimit <= 0 {
		writeLimit = 60
	}
	writes := middleware.RateLimit(s.redis, writeLimit, time.Minute, "writes")

	posts := api.Group("/posts", writes)
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)
	posts.Get("/:id/", s.GetPost)
	posts.Put("/:id/", s.UpdatePost)
	posts.Delete("/:id/", s.DeletePost)

	authors := api.Group("/authors", writes)
	authors.Get("/", s.ListAuthors)
	authors.Post("/", s.CreateAuthor)
	authors.Get("/:id/", s.GetAuthor)
	authors.Put("/:id/", s.UpdateAuthor)
	authors.Delete("/:id/", s.DeleteAuthor)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database is reachable. Redis only backs
// the write limiter, which fails open, so a missing Redis degrades but does
// not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	switch {
	case dbStatus != "healthy":
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	case redisStatus != "healthy":
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the database and Redis connections.
func (s *Server) Shutdown(_ context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			observability.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			observability.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}
	return nil
}
