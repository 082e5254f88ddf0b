package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/swxiao/jenkins/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Search        SearchConfig
	Cache         CacheConfig
	History       HistoryConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// SearchConfig holds workspace and query settings
type SearchConfig struct {
	WorkspaceFile   string
	Watch           bool
	RefreshSpec     string // cron spec for periodic snapshot refresh; empty disables
	SuggestionLimit int
	CaseInsensitive bool // exact-match case policy, one per process
}

// CacheConfig holds suggestion cache settings
type CacheConfig struct {
	Enabled       bool
	MaxEntries    int
	TTL           time.Duration
	RedisURL      string
	RedisPassword string
	RedisDB       int
}

// HistoryConfig holds search-history database settings
type HistoryConfig struct {
	Enabled bool
	Driver  string // sqlite3 or postgres
	DSN     string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Search:        loadSearchConfig(),
		Cache:         loadCacheConfig(),
		History:       loadHistoryConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("QUICKSEARCH_HOST", "0.0.0.0"),
		Port:            getEnv("QUICKSEARCH_PORT", "8080"),
		ReadTimeout:     getEnvDuration("QUICKSEARCH_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("QUICKSEARCH_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("QUICKSEARCH_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("QUICKSEARCH_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("QUICKSEARCH_HEALTH_PORT", "9090"),
	}
}

func loadSearchConfig() SearchConfig {
	return SearchConfig{
		WorkspaceFile:   getEnv("QUICKSEARCH_WORKSPACE_FILE", "workspace.yaml"),
		Watch:           getEnvBool("QUICKSEARCH_WATCH", true),
		RefreshSpec:     getEnv("QUICKSEARCH_REFRESH_SPEC", "@every 5m"),
		SuggestionLimit: getEnvInt("QUICKSEARCH_SUGGESTION_LIMIT", 100),
		CaseInsensitive: getEnvBool("QUICKSEARCH_CASE_INSENSITIVE", false),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:       getEnvBool("QUICKSEARCH_CACHE_ENABLED", true),
		MaxEntries:    getEnvInt("QUICKSEARCH_CACHE_MAX_ENTRIES", 1024),
		TTL:           getEnvDuration("QUICKSEARCH_CACHE_TTL", 30*time.Second),
		RedisURL:      getEnv("QUICKSEARCH_REDIS_URL", ""),
		RedisPassword: getEnv("QUICKSEARCH_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("QUICKSEARCH_REDIS_DB", 0),
	}
}

func loadHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Enabled: getEnvBool("QUICKSEARCH_HISTORY_ENABLED", false),
		Driver:  getEnv("QUICKSEARCH_HISTORY_DRIVER", "sqlite3"),
		DSN:     getEnv("QUICKSEARCH_HISTORY_DSN", "quicksearch-history.db"),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("QUICKSEARCH_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("QUICKSEARCH_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("QUICKSEARCH_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("QUICKSEARCH_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("QUICKSEARCH_OTEL_SERVICE_NAME", "quicksearch"),
		OTelServiceVersion: getEnv("QUICKSEARCH_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("QUICKSEARCH_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	if c.Search.WorkspaceFile == "" {
		return fmt.Errorf("workspace file is required")
	}
	if c.Search.SuggestionLimit < 0 {
		return fmt.Errorf("suggestion limit must not be negative")
	}

	if c.History.Enabled {
		switch c.History.Driver {
		case "sqlite3", "postgres":
		default:
			return fmt.Errorf("invalid history driver: %s (must be sqlite3 or postgres)", c.History.Driver)
		}
		if c.History.DSN == "" {
			return fmt.Errorf("history DSN is required when history is enabled")
		}
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
