// Package server provides the fiber based HTTP server of the api process.
package server

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

type HTTPServer struct {
	cfg Config
	app *fiber.App
}

// NewHTTPServer creates the server and applies middlewares in descending priority.
func NewHTTPServer(cfg Config, middlewares []Middleware) *HTTPServer {
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          customErrorHandler(cfg.HideErrorDetails),
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimit,
	})

	applyMiddlewares(app, middlewares)

	return &HTTPServer{cfg: cfg, app: app}
}

func (s *HTTPServer) RegisterRouter(register func(r fiber.Router)) {
	register(s.app)
}

func (s *HTTPServer) Start() error {
	return s.app.Listen(s.cfg.Address())
}

func (s *HTTPServer) Stop(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// Test serves req in memory.
func (s *HTTPServer) Test(req *http.Request) (*http.Response, error) {
	return s.app.Test(req, -1)
}
