package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/classwire/handraise-server/internal/app"
	"github.com/classwire/handraise-server/internal/config"
	"github.com/classwire/handraise-server/internal/log"
)

func main() {
	var configPath string
	var overrides config.Config

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flag.DurationVar(&overrides.ReadHeaderTimeout, "read-header-timeout", 0, "HTTP read header timeout")
	flag.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.IntVar(&overrides.SubscriberBuffer, "subscriber-buffer", 0, "per-observer delivery queue size")
	flag.Parse()

	logger := log.New("info")

	cfg, resolvedPath, err := config.Load(logger, configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", resolvedPath).Msg("failed to load config")
	}
	cfg.UpdateFrom(overrides)
	logger = log.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	logger.Info().Str("addr", cfg.Addr).Str("config", resolvedPath).Msg("starting handraise server")
	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
