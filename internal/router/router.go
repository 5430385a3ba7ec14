package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/config"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/handler"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/middleware"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProjectHandler     *handler.ProjectHandler
	PostHandler        *handler.PostHandler
	ContactFormHandler *handler.ContactFormHandler
	MessageHandler     *handler.MessageHandler
	ImageHandler       *handler.ImageHandler
	StreamHandler      *handler.StreamHandler
	DatabasePing       func() error
	// SubmitLimiter guards contact submissions; a per-IP limiter is used when nil.
	SubmitLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.DatabasePing))

	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(api.Group("/projects"))
	}
	if deps.PostHandler != nil {
		deps.PostHandler.Register(api.Group("/posts"))
	}

	if deps.ContactFormHandler != nil {
		limiter := deps.SubmitLimiter
		if limiter == nil {
			limiter = middleware.RateLimit("contact-submit", 5, time.Minute)
		}
		deps.ContactFormHandler.RegisterWithSubmit(api.Group("/contact-form"), limiter)
	}

	if deps.MessageHandler != nil {
		deps.MessageHandler.Register(api.Group("/messages"))
	}
	if deps.ImageHandler != nil {
		deps.ImageHandler.Register(api.Group("/images"))
	}
	if deps.StreamHandler != nil {
		deps.StreamHandler.Register(api.Group("/stream"))
	}
}
