// Package rest serves the tool operations over plain HTTP for clients that
// do not speak MCP.
package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/devopsnextgenx/mcp-crypto-server/internal/metrics"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/registry"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/resources"
	"github.com/devopsnextgenx/mcp-crypto-server/internal/script"
)

// Server is the REST front end. It shares the registry, executor, and status
// provider with the MCP server so both surfaces report the same state.
type Server struct {
	app      *fiber.App
	registry *registry.Registry
	exec     *script.Executor
	status   *resources.StatusProvider
	logger   *slog.Logger
}

// Options carries the collaborators of a REST server.
type Options struct {
	Registry *registry.Registry
	Executor *script.Executor
	Status   *resources.StatusProvider
	Logger   *slog.Logger
	Metrics  bool
}

// New builds the REST server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           60 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
		},
	})

	s := &Server{
		app:      app,
		registry: opts.Registry,
		exec:     opts.Executor,
		status:   opts.Status,
		logger:   logger,
	}

	app.Use(recover.New())
	app.Use(s.requestLogger())
	s.routes(opts.Metrics)
	return s
}

// Listen serves on host:port until Shutdown.
func (s *Server) Listen(host string, port int) error {
	return s.app.Listen(fmt.Sprintf("%s:%d", host, port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestLogger tags every request with an ID and logs method, path,
// status, and latency.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("request_id", id)

		start := time.Now()
		err := c.Next()

		s.logger.Info("http request",
			"request_id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}

func (s *Server) routes(withMetrics bool) {
	s.app.Get("/", s.handleInfo)
	s.app.Get("/health", s.handleHealth)

	tools := s.app.Group("/tools")
	tools.Post("/encrypt", s.handleEncrypt)
	tools.Post("/decrypt", s.handleDecrypt)
	for _, op := range []string{"add", "subtract", "multiply", "divide", "modulo"} {
		tools.Post("/"+op, s.calcHandler(op))
	}
	tools.Post("/executeScript", s.handleExecuteScript)
	tools.Get("/list", s.handleListTools)

	res := s.app.Group("/resources")
	res.Get("/version", s.handleVersion)
	res.Get("/status", s.handleStatus)
	res.Get("/tools", s.handleToolsResource)

	if withMetrics {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(metrics.Handler())
		s.app.Get("/metrics", func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}
}

func (s *Server) handleInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"server":  resources.ServerName,
		"version": resources.ServerVersion,
		"tools":   s.registry.Names(),
		"docs": fiber.Map{
			"tools":     "/tools/{encrypt,decrypt,add,subtract,multiply,divide,modulo,executeScript}",
			"resources": "/resources/{version,status,tools}",
			"health":    "/health",
		},
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleVersion(c *fiber.Ctx) error {
	return c.JSON(resources.Version())
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.status.Snapshot())
}

func (s *Server) handleToolsResource(c *fiber.Ctx) error {
	return c.JSON(s.registry.List(true))
}

func (s *Server) handleListTools(c *fiber.Ctx) error {
	detailed := c.QueryBool("detailed", true)
	return c.JSON(s.registry.List(detailed))
}
