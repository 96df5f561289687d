package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Graph   GraphConfig
	Logging LoggingConfig
	Engine  EngineConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	RequestTimeout    time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// GraphConfig describes connectivity to the graph database (Neo4j/Neptune).
// InMemory swaps the Bolt backend for the in-process accessor, for local runs
// without a database.
type GraphConfig struct {
	InMemory        bool
	URI             string
	Database        string
	Username        string
	Password        string
	MaxConnections  int
	BreakerEnabled  bool
	BreakerFailures int
	BreakerTimeout  time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// EngineConfig carries the default ranking knobs applied when a request does
// not override them.
type EngineConfig struct {
	DefaultLimit         int
	DefaultMinSimilarity float64
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultRequestTimeout   = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultBreakerFailures  = 5
	defaultBreakerTimeout   = 30 * time.Second
	defaultResultLimit      = 10
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			RequestTimeout:  defaultRequestTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
		Graph: GraphConfig{
			InMemory:        parseBoolWithDefault("GRAPH_IN_MEMORY", false),
			URI:             os.Getenv("GRAPH_URI"),
			Database:        valueOrDefault("GRAPH_DATABASE", ""),
			Username:        os.Getenv("GRAPH_USERNAME"),
			Password:        os.Getenv("GRAPH_PASSWORD"),
			MaxConnections:  parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
			BreakerEnabled:  parseBoolWithDefault("GRAPH_BREAKER_ENABLED", true),
			BreakerFailures: parseIntWithDefault("GRAPH_BREAKER_FAILURES", defaultBreakerFailures),
			BreakerTimeout:  defaultBreakerTimeout,
		},
		Engine: EngineConfig{
			DefaultLimit:         parseIntWithDefault("ENGINE_DEFAULT_LIMIT", defaultResultLimit),
			DefaultMinSimilarity: parseFloatWithDefault("ENGINE_MIN_SIMILARITY", 0),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"SERVER_REQUEST_TIMEOUT", &cfg.HTTP.RequestTimeout},
		{"GRAPH_BREAKER_TIMEOUT", &cfg.Graph.BreakerTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			dur, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.target = dur
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", false)
	cfg.HTTP.AllowedOriginsCSV = os.Getenv("SERVER_ALLOWED_ORIGINS")

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloatWithDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
