// Package web serves the blog's browser pages. Every request activates one
// screen, mounts it against the REST API, applies the user's action and
// renders the resulting state.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
	"inkwell/internal/observability"
	"inkwell/internal/screen"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
)

// ServiceName labels the web frontend's metrics and traces.
const ServiceName = "inkwell-web"

//go:embed views
var viewsFS embed.FS

// Server renders the blog pages over a posts and an authors collection.
type Server struct {
	config         *config.Config
	posts          screen.PostCollection
	authors        screen.AuthorCollection
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer wires the frontend over the given collections, usually the
// Posts and Authors resources of an apiclient.Client.
func NewServer(cfg *config.Config, posts screen.PostCollection, authors screen.AuthorCollection) *Server {
	return &Server{
		config:         cfg,
		posts:          posts,
		authors:        authors,
		promMiddleware: observability.HTTPMetrics(ServiceName),
	}
}

func newEngine() *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(views), ".html")
}

// NewApp builds the Fiber app with views, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Inkwell",
		Views:                 newEngine(),
		ViewsLayout:           "layouts/main",
		ReadTimeout:           30 * time.Second,
		DisableStartupMessage: s.config.IsProduction(),
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
}

// SetupRoutes registers one GET per screen. User actions post back to the
// screen's own route. Create routes are registered ahead of the :id routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/", s.PostList)

	posts := app.Group("/posts")
	posts.Get("/", s.PostList)
	posts.Post("/", s.PostList)
	posts.Get("/create", s.CreatePost)
	posts.Post("/create", s.CreatePost)
	posts.Get("/:id", s.PostDetail)
	posts.Post("/:id", s.PostDetail)
	posts.Get("/:id/edit", s.EditPost)
	posts.Post("/:id/edit", s.EditPost)

	authors := app.Group("/authors")
	authors.Get("/", s.AuthorList)
	authors.Post("/", s.AuthorList)
	authors.Get("/create", s.CreateAuthor)
	authors.Post("/create", s.CreateAuthor)
	authors.Get("/:id", s.AuthorDetail)
	authors.Post("/:id", s.AuthorDetail)
	authors.Get("/:id/edit", s.EditAuthor)
	authors.Post("/:id/edit", s.EditAuthor)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}
