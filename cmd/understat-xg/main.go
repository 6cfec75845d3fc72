package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/understat-xg/internal/app"
	"github.com/riskibarqy/understat-xg/internal/config"
	"github.com/riskibarqy/understat-xg/internal/interfaces/cli"
	"github.com/riskibarqy/understat-xg/internal/observability"
	"github.com/riskibarqy/understat-xg/internal/platform/id"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/riskibarqy/understat-xg/internal/usecase"
)

const (
	exitFailure = 1
	exitNoData  = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return exitFailure
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTelemetry, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return exitFailure
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(l *logging.Logger) *app.App {
		return app.New(cfg, l)
	}
	root := cli.NewRootCommand(factory, id.NewRandomGenerator(), logger)
	if err := root.ExecuteContext(ctx); err != nil {
		if usecase.IsNoData(err) {
			logger.WarnContext(ctx, "nothing to process", "error", err)
			return exitNoData
		}
		logger.ErrorContext(ctx, "command failed", "error", err)
		return exitFailure
	}
	return 0
}
