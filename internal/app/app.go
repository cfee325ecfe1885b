package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/specialistvlad/schedgrid/internal/builder"
	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/publish"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    *model.Loader
	builder   builder.Builder
	publisher *publish.Publisher

	ctx        context.Context
	httpServer *http.Server

	mu     sync.Mutex
	status Status
}

// Option customizes an App.
type Option func(*App)

// WithObjectStore publishes to store instead of the S3 bucket from the
// configuration.
func WithObjectStore(store publish.ObjectStore) Option {
	return func(a *App) {
		a.publisher = publish.NewPublisher(store, a.config.S3.Prefix)
	}
}

// WithBuilder replaces the default graph builder.
func WithBuilder(b builder.Builder) Option {
	return func(a *App) { a.builder = b }
}

// NewApp is the constructor for the main application. Documents go to outW
// unless an output path is configured; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  model.NewLoader(cfg.Variables),
		builder: builder.New(),
		ctx:     ctxlog.WithLogger(context.Background(), logger),
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Publish && a.publisher == nil {
		store, err := publish.NewS3Store(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to configure publishing: %w", err)
		}
		a.publisher = publish.NewPublisher(store, cfg.S3.Prefix)
		logger.Debug("S3 publishing enabled.", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)
	}

	return a, nil
}

// Status returns a snapshot of the last generation.
func (a *App) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.status
	s.Schedules = append([]string(nil), a.status.Schedules...)
	return s
}
