package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/understat-xg/internal/config"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace configures global OpenTelemetry providers for Uptrace and mirrors
// log entries into the OpenTelemetry log pipeline. Mirrored entries start at
// info, or at APP_LOG_LEVEL when that is stricter.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.UptraceEnabled {
		logging.SetMirror(nil)
		logger.Debug("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return func(context.Context) error { return nil }, nil
	}

	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logging.SetMirror(nil)
		logger.Debug("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
		uptrace.WithLoggingEnabled(true),
	)
	level := mirrorLevel(cfg.LogLevel)
	logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion, level))

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"target_team", cfg.TargetTeam,
		"mirror_level", level.String(),
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}

// resourceAttributes tags every span and log record with the scraping target.
func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("understat.target_team", cfg.TargetTeam),
		attribute.Int("understat.fetch_workers", cfg.FetchWorkers),
	}
	if baseURL := strings.TrimSpace(cfg.UnderstatBaseURL); baseURL != "" {
		attrs = append(attrs, attribute.String("understat.base_url", baseURL))
	}
	return attrs
}

func mirrorLevel(configured logging.Level) logging.Level {
	if configured > logging.LevelInfo {
		return configured
	}
	return logging.LevelInfo
}
