package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vellum-ui/vellum/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vellum.json"

	// DefaultPort is the default server port.
	DefaultPort = 8090

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config represents the complete vellum.json configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Cache contains render cache configuration.
	Cache CacheConfig `json:"cache,omitempty"`

	// Render contains HTML renderer configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// LogLevel is the minimum log level: "debug", "info", "warn" or
	// "error".
	LogLevel string `json:"logLevel,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ShutdownTimeout is how long graceful shutdown waits (e.g. "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// CacheConfig contains render cache settings.
type CacheConfig struct {
	// MaxEntries is the entry-count bound before LRU eviction.
	MaxEntries int `json:"maxEntries,omitempty"`

	// MaxMemory is the memory bound in bytes.
	MaxMemory int64 `json:"maxMemory,omitempty"`

	// TTL is how long a cached render stays valid (e.g. "5m").
	TTL string `json:"ttl,omitempty"`

	// CleanupInterval is how often expired entries are swept (e.g. "1m").
	CleanupInterval string `json:"cleanupInterval,omitempty"`
}

// RenderConfig contains HTML renderer settings.
type RenderConfig struct {
	// DisableEscaping turns off HTML escaping of text and attributes.
	// Only for output that is already trusted markup.
	DisableEscaping bool `json:"disableEscaping,omitempty"`

	// InternCapacity is the size of the renderer's string intern pool.
	InternCapacity int `json:"internCapacity,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace (default: "vellum").
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: "10s",
		},
		Cache: CacheConfig{
			MaxEntries:      128,
			MaxMemory:       100 << 20,
			TTL:             "5m",
			CleanupInterval: "1m",
		},
		Render: RenderConfig{
			InternCapacity: 1000,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "vellum",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the specified directory. It looks for
// vellum.json in the directory; a missing file yields the defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E400").WithDetail(path).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E400").
			WithDetail("failed to parse " + path + ": " + err.Error())
	}

	cfg.configPath = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E400").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E400").WithDetail(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks value ranges and duration syntax.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E401").WithDetail("server.port out of range")
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("E401").WithDetail("cache.maxEntries must not be negative")
	}
	if c.Cache.MaxMemory < 0 {
		return errors.New("E401").WithDetail("cache.maxMemory must not be negative")
	}
	if c.Render.InternCapacity < 0 {
		return errors.New("E401").WithDetail("render.internCapacity must not be negative")
	}
	for field, value := range map[string]string{
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"cache.ttl":              c.Cache.TTL,
		"cache.cleanupInterval":  c.Cache.CleanupInterval,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return errors.New("E401").WithDetail(field + ": " + err.Error())
		}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New("E401").WithDetail("logLevel must be debug, info, warn or error")
	}
	return nil
}

// CacheTTL returns the parsed cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 5*time.Minute)
}

// CacheCleanupInterval returns the parsed sweep interval.
func (c *Config) CacheCleanupInterval() time.Duration {
	return parseDuration(c.Cache.CleanupInterval, time.Minute)
}

// ServerShutdownTimeout returns the parsed graceful shutdown budget.
func (c *Config) ServerShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
