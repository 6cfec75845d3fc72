package app

import (
	"strings"

	"github.com/riskibarqy/understat-xg/external/understat"
	"github.com/riskibarqy/understat-xg/internal/config"
	"github.com/riskibarqy/understat-xg/internal/domain/match"
	"github.com/riskibarqy/understat-xg/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	"github.com/riskibarqy/understat-xg/internal/platform/resilience"
	"github.com/riskibarqy/understat-xg/internal/usecase"
)

// App holds the long-lived dependencies of one command invocation. Services are
// built per command because flags may override the configured team or directories.
type App struct {
	cfg      config.Config
	logger   *logging.Logger
	provider match.Provider
	datasets *filesystem.DatasetRepository
}

func New(cfg config.Config, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}

	provider := understat.NewClient(understat.ClientConfig{
		BaseURL: cfg.UnderstatBaseURL,
		Timeout: cfg.UnderstatTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.UnderstatCircuitEnabled,
			FailureThreshold: cfg.UnderstatCircuitFailureCount,
			OpenTimeout:      cfg.UnderstatCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.UnderstatCircuitHalfOpenMaxReq,
		},
	})

	return NewWithProvider(cfg, provider, logger)
}

// NewWithProvider wires the app around an existing provider.
func NewWithProvider(cfg config.Config, provider match.Provider, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		datasets: filesystem.NewDatasetRepository(logger),
	}
}

func (a *App) Config() config.Config {
	return a.cfg
}

// FetchService writes season documents into jsonDir, or the configured JSON dir.
func (a *App) FetchService(jsonDir string) *usecase.FetchService {
	return usecase.NewFetchService(a.provider, a.rawRepository(jsonDir), a.cfg.FetchWorkers, a.logger)
}

// TransformService derives rows for team, or TARGET_TEAM when team is empty.
func (a *App) TransformService(team string) *usecase.TransformService {
	return usecase.NewTransformService(a.rawRepository(""), pick(team, a.cfg.TargetTeam), a.logger)
}

// ExportService converts documents for team. An empty datasetDir falls back to
// DATASET_DIR, or to the per-team default when the team was overridden.
func (a *App) ExportService(team, datasetDir string) *usecase.ExportService {
	team = pick(team, a.cfg.TargetTeam)
	if strings.TrimSpace(datasetDir) == "" {
		datasetDir = a.cfg.DatasetDir
		if team != a.cfg.TargetTeam && datasetDir == config.DefaultDatasetDir(a.cfg.TargetTeam) {
			datasetDir = config.DefaultDatasetDir(team)
		}
	}

	return usecase.NewExportService(
		a.TransformService(team),
		a.rawRepository(""),
		a.datasets,
		usecase.ExportConfig{
			DatasetDir: datasetDir,
			ExportDir:  a.cfg.ExportDir,
		},
		a.logger,
	)
}

func (a *App) rawRepository(jsonDir string) *filesystem.RawMatchRepository {
	return filesystem.NewRawMatchRepository(pick(jsonDir, a.cfg.JSONDir), a.logger)
}

func pick(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
