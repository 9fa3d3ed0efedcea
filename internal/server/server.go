// Package server exposes the skill dispatcher as an HTTPS webhook.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"discogs-explorer/internal/common/config"
	apperrors "discogs-explorer/internal/common/errors"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/common/validation"
	"discogs-explorer/internal/models"
)

// Dispatcher turns a decoded request envelope into a response.
type Dispatcher interface {
	Dispatch(ctx context.Context, env *models.RequestEnvelope) (*models.Response, error)
}

// Validator checks a raw request body before it is decoded.
type Validator interface {
	Validate(document []byte) *validation.ValidationResult
}

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

type Server struct {
	app           *fiber.App
	config        *config.Config
	dispatcher    Dispatcher
	validator     Validator
	errorHandler  *apperrors.ErrorHandler
	logger        Logger
	draining      atomic.Bool
	applicationID string
}

func New(cfg *config.Config, dispatcher Dispatcher, validator Validator, log Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Server{
		config:        cfg,
		dispatcher:    dispatcher,
		validator:     validator,
		errorHandler:  apperrors.NewErrorHandler(log),
		logger:        log,
		applicationID: cfg.Skill.ApplicationID,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:          config.GetDuration(cfg.Server.WriteTimeout),
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())

	s.app.Get("/health", s.health)
	s.app.Get("/ready", s.ready)
	s.app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})
	s.app.Post(cfg.Server.SkillPath, s.handleSkill)

	return s
}

// App returns the underlying fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.Info("skill webhook listening", map[string]interface{}{
		"addr": addr,
		"path": s.config.Server.SkillPath,
	})
	return s.app.Listen(addr)
}

// Shutdown marks the server as not ready and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.draining.Store(true)
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

func (s *Server) ready(c *fiber.Ctx) error {
	if s.draining.Load() || s.dispatcher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (s *Server) handleSkill(c *fiber.Ctx) error {
	start := time.Now()
	body := c.Body()

	if result := s.validator.Validate(body); !result.Valid {
		s.logger.Warn("rejected request envelope", map[string]interface{}{
			"errors": result.GetErrorMessages(),
			"ip":     c.IP(),
		})
		return writeError(c, apperrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")))
	}

	var env models.RequestEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return writeError(c, apperrors.NewInvalidRequestError(err.Error()))
	}

	if s.applicationID != "" && env.Session.ApplicationID() != "" && env.Session.ApplicationID() != s.applicationID {
		s.logger.Warn("request for another application", map[string]interface{}{
			"applicationId": env.Session.ApplicationID(),
			"requestId":     env.Request.RequestID,
		})
		return writeError(c, apperrors.NewInvalidRequestError("application id mismatch"))
	}

	resp, err := s.dispatcher.Dispatch(c.UserContext(), &env)
	if err != nil {
		stdErr := s.errorHandler.HandleRequestError(err, map[string]interface{}{
			"requestId":   env.Request.RequestID,
			"requestType": env.RequestType(),
			"intent":      env.IntentName(),
		})
		return writeError(c, stdErr)
	}

	s.logger.Info("request served", map[string]interface{}{
		"requestId":   env.Request.RequestID,
		"requestType": env.RequestType(),
		"intent":      env.IntentName(),
		"durationMs":  time.Since(start).Milliseconds(),
	})
	return c.Status(fiber.StatusOK).JSON(models.Wrap(&env, resp))
}

// handleError covers errors that escape a route: unknown paths, wrong
// methods and recovered panics.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code == fiber.StatusInternalServerError {
		s.logger.Error("unhandled server error", map[string]interface{}{
			"error": err.Error(),
			"path":  c.Path(),
		})
		return writeError(c, apperrors.NewInternalError(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{"message": err.Error()},
	})
}

func writeError(c *fiber.Ctx, stdErr *apperrors.StandardError) error {
	return c.Status(apperrors.HTTPStatus(stdErr.Code)).JSON(fiber.Map{
		"error": fiber.Map{
			"code":      stdErr.Code,
			"message":   stdErr.Message,
			"retryable": stdErr.Retryable,
		},
	})
}
