// cmd/skill-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"discogs-explorer/internal/common/config"
	"discogs-explorer/internal/common/discogs"
	commonhttp "discogs-explorer/internal/common/http"
	"discogs-explorer/internal/common/logger"
	"discogs-explorer/internal/common/observability"
	"discogs-explorer/internal/common/validation"
	"discogs-explorer/internal/handlers"
	"discogs-explorer/internal/server"
	"discogs-explorer/internal/skill"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting skill server...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	obs, err := observability.New(observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.App.Version,
		TracingEnabled: cfg.Observability.TracingEnable,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	// --- Catalog client ---
	discogsCfg := discogs.Config{
		BaseURL:   cfg.Discogs.BaseURL,
		UserAgent: cfg.Discogs.UserAgent,
		Token:     cfg.Discogs.Token,
		HTTPClient: commonhttp.NewClient(commonhttp.Options{
			Timeout:             config.GetDuration(cfg.Discogs.Timeout),
			MaxIdleConns:        cfg.Discogs.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.Discogs.MaxIdleConnsPerHost,
			UserAgent:           cfg.Discogs.UserAgent,
		}),
		Tracer:   obs.Tracer(),
		Recorder: obs,
	}
	if cfg.Breaker.Enabled {
		discogsCfg.Breaker = &discogs.BreakerSettings{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     config.GetDuration(cfg.Breaker.Interval),
			Timeout:      config.GetDuration(cfg.Breaker.Timeout),
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		}
	}
	catalog, err := discogs.New(discogsCfg, log.With(map[string]interface{}{"component": "discogs"}))
	if err != nil {
		zapLog.Fatal("discogs client init failed", zap.Error(err))
	}
	if cfg.Discogs.Token == "" {
		zapLog.Warn("DISCOGS_TOKEN not set, catalog calls are unauthenticated and rate limited")
	}

	// --- Dispatcher ---
	dispatcher, err := handlers.NewDispatcher(cfg, catalog, log,
		skill.WithTracer(obs.Tracer()),
		skill.WithRecorder(obs),
	)
	if err != nil {
		zapLog.Fatal("dispatcher init failed", zap.Error(err))
	}
	zapLog.Info("Handlers registered", zap.Strings("handlers", dispatcher.HandlerNames()))

	validator, err := validation.NewEnvelopeValidator(cfg.Server.SchemaPath)
	if err != nil {
		zapLog.Fatal("envelope schema failed to compile", zap.Error(err))
	}

	// --- Webhook ---
	srv := server.New(cfg, dispatcher, validator, log)
	go func() {
		if err := srv.Listen(); err != nil {
			zapLog.Fatal("skill server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping skill server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Skill server stopped gracefully")
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return config.GetDuration(cfg.Server.ShutdownTimeout)
	}
	return 30 * time.Second
}
