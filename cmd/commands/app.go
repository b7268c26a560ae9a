package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/config"
	"github.com/ncobase/taskd/data"
	"github.com/ncobase/taskd/handler"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/logging/observes"
	"github.com/ncobase/taskd/middleware"
	"github.com/ncobase/taskd/service"
	"github.com/ncobase/taskd/version"
)

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	data    *data.Data
	handler *handler.Handler
	server  *http.Server
}

// NewApp creates a new application instance with manual dependency injection.
// A positive port overrides the configured one.
func NewApp(ctx context.Context, configPath string, port int) (*App, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	// Create logger
	cleanupLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log := logger.StdLogger()
	info := version.GetVersionInfo()
	log.SetVersion(info.Version)

	// Error reporting and tracing
	cleanupSentry, err := observes.NewSentry(&observes.SentryOptions{
		Dsn:         cfg.Observes.Sentry.Endpoint,
		Name:        cfg.AppName,
		Release:     firstNonEmpty(cfg.Observes.Sentry.Release, info.Version),
		Environment: firstNonEmpty(cfg.Observes.Sentry.Environment, cfg.Environment),
		SampleRate:  cfg.Observes.Sentry.SampleRate,
	})
	if err != nil {
		cleanupLogger()
		return nil, nil, fmt.Errorf("failed to init sentry: %w", err)
	}
	shutdownTracer, err := observes.NewTracer(&observes.TracerOption{
		URL:          cfg.Observes.Tracer.Endpoint,
		Name:         cfg.Observes.Tracer.ServiceName,
		Version:      info.Version,
		Environment:  cfg.Environment,
		SamplingRate: cfg.Observes.Tracer.SamplingRate,
	})
	if err != nil {
		cleanupSentry()
		cleanupLogger()
		return nil, nil, fmt.Errorf("failed to init tracer: %w", err)
	}

	// Create data layer
	dataLayer, err := data.New(ctx, cfg.Data.MongoDB, log)
	if err != nil {
		_ = shutdownTracer(context.Background())
		cleanupSentry()
		cleanupLogger()
		return nil, nil, fmt.Errorf("failed to create data layer: %w", err)
	}

	svc := service.NewService(dataLayer, log)
	h := handler.NewHandler(svc, dataLayer, log)

	app := &App{
		config:  cfg,
		logger:  log,
		data:    dataLayer,
		handler: h,
	}

	cfg.Watch(func(next *config.Config) {
		if err := log.ApplyLevel(next.Logger.Level); err != nil {
			log.Warn(context.Background(), "ignoring invalid log level", "level", next.Logger.Level, "error", err)
			return
		}
		log.Info(context.Background(), "configuration reloaded", "level", next.Logger.Level)
	})

	// The store is disconnected last so in-flight spans and reports can flush.
	cleanup := func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Error(context.Background(), "failed to shutdown tracer", "error", err)
		}
		cleanupSentry()
		if err := dataLayer.Close(); err != nil {
			log.Error(context.Background(), "failed to close data layer", "error", err)
		}
		cleanupLogger()
	}

	return app, cleanup, nil
}

// Engine builds the HTTP handler: gin routes behind the CORS policy.
func (a *App) Engine() http.Handler {
	if a.config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Default(a.logger)...)
	a.handler.RegisterRoutes(router)

	return middleware.CORS(a.config.Server.CORSOrigins, router)
}

// Run starts the application server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	addr := a.config.Server.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.Engine(),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(context.Background(), "Starting server", "addr", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error(context.Background(), "Server failed", "error", err)
			return err
		}
		return nil
	case <-quit:
	}

	a.logger.Info(context.Background(), "Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error(ctx, "Server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info(context.Background(), "Server exited")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
