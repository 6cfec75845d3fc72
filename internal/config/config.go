package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/understat-xg/internal/platform/logging"
)

const (
	defaultTargetTeam = "Bayern Munich"
	defaultEnvFile    = ".env"
)

// Config stores runtime configuration for the command line tool.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	LogLevel                       logging.Level
	TargetTeam                     string
	JSONDir                        string
	DatasetDir                     string
	ExportDir                      string
	UnderstatBaseURL               string
	UnderstatTimeout               time.Duration
	UnderstatCircuitEnabled        bool
	UnderstatCircuitFailureCount   int
	UnderstatCircuitOpenTimeout    time.Duration
	UnderstatCircuitHalfOpenMaxReq int
	FetchWorkers                   int
	UptraceEnabled                 bool
	UptraceDSN                     string
}

// Load reads the environment, seeded from APP_ENV_FILE (default .env) when
// that file exists. Variables already set in the process win over the file.
func Load() (Config, error) {
	if err := loadEnvFile(getEnv("APP_ENV_FILE", defaultEnvFile)); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	targetTeam := strings.TrimSpace(getEnv("TARGET_TEAM", defaultTargetTeam))

	understatTimeout, err := time.ParseDuration(getEnv("UNDERSTAT_TIMEOUT", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_TIMEOUT: %w", err)
	}
	if understatTimeout < 0 {
		return Config{}, fmt.Errorf("UNDERSTAT_TIMEOUT must be >= 0")
	}

	understatCircuitEnabled, err := strconv.ParseBool(getEnv("UNDERSTAT_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_CIRCUIT_ENABLED: %w", err)
	}

	understatCircuitFailureCount, err := getEnvAsInt("UNDERSTAT_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if understatCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("UNDERSTAT_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	understatCircuitOpenTimeout, err := time.ParseDuration(getEnv("UNDERSTAT_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if understatCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("UNDERSTAT_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	understatCircuitHalfOpenMaxReq, err := getEnvAsInt("UNDERSTAT_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse UNDERSTAT_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if understatCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("UNDERSTAT_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	fetchWorkers, err := getEnvAsInt("FETCH_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_WORKERS: %w", err)
	}
	if fetchWorkers < 1 {
		return Config{}, fmt.Errorf("FETCH_WORKERS must be >= 1")
	}

	return Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "understat-xg"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		TargetTeam:                     targetTeam,
		JSONDir:                        getEnv("JSON_DIR", "JSON Files"),
		DatasetDir:                     getEnv("DATASET_DIR", DefaultDatasetDir(targetTeam)),
		ExportDir:                      getEnv("EXPORT_DIR", "output"),
		UnderstatBaseURL:               strings.TrimRight(getEnv("UNDERSTAT_BASE_URL", "https://understat.com"), "/"),
		UnderstatTimeout:               understatTimeout,
		UnderstatCircuitEnabled:        understatCircuitEnabled,
		UnderstatCircuitFailureCount:   understatCircuitFailureCount,
		UnderstatCircuitOpenTimeout:    understatCircuitOpenTimeout,
		UnderstatCircuitHalfOpenMaxReq: understatCircuitHalfOpenMaxReq,
		FetchWorkers:                   fetchWorkers,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
	}, nil
}

// DefaultDatasetDir groups one team's per-season datasets.
func DefaultDatasetDir(team string) string {
	return "Data for " + strings.TrimSpace(team)
}

func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
