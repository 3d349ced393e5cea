package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/classwire/handraise-server/internal/config"
	"github.com/classwire/handraise-server/internal/core"
	"github.com/classwire/handraise-server/internal/metrics"
	transporthttp "github.com/classwire/handraise-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	registry        *core.Registry
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	registry := core.NewRegistry(core.DefaultCatalog(), cfg.SubscriberBuffer)

	m, err := metrics.New("handraise", nil, func() float64 {
		return float64(registry.Len())
	})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	server := transporthttp.NewServer(registry, m, cfg, logger)

	logger.Info().Int("signal_types", registry.Catalog().Len()).Msg("signal catalog loaded")

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		registry:        registry,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
