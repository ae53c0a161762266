// Package config loads the service configuration from TOML files and
// REGISTRAR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/registrar/pkg/cache"
	"github.com/JaimeStill/registrar/pkg/database"
	"github.com/JaimeStill/registrar/pkg/storage"
	"github.com/JaimeStill/registrar/pkg/tracing"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRegistrarEnv             = "REGISTRAR_ENV"
	EnvRegistrarShutdownTimeout = "REGISTRAR_SHUTDOWN_TIMEOUT"
	EnvRegistrarVersion         = "REGISTRAR_VERSION"
)

// DatabaseEnv names the REGISTRAR_DB_* overrides. cmd/migrate resolves its
// connection from the same variables.
var DatabaseEnv = &database.Env{
	Host:            "REGISTRAR_DB_HOST",
	Port:            "REGISTRAR_DB_PORT",
	Name:            "REGISTRAR_DB_NAME",
	User:            "REGISTRAR_DB_USER",
	Password:        "REGISTRAR_DB_PASSWORD",
	SSLMode:         "REGISTRAR_DB_SSL_MODE",
	ApplicationName: "REGISTRAR_DB_APPLICATION_NAME",
	MaxOpenConns:    "REGISTRAR_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REGISTRAR_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REGISTRAR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REGISTRAR_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "REGISTRAR_STORAGE_CONTAINER_NAME",
	ConnectionString: "REGISTRAR_STORAGE_CONNECTION_STRING",
	ServiceURL:       "REGISTRAR_STORAGE_SERVICE_URL",
}

var cacheEnv = &cache.Env{
	Enabled:     "REGISTRAR_CACHE_ENABLED",
	Addr:        "REGISTRAR_CACHE_ADDR",
	Password:    "REGISTRAR_CACHE_PASSWORD",
	DB:          "REGISTRAR_CACHE_DB",
	KeyPrefix:   "REGISTRAR_CACHE_KEY_PREFIX",
	TTL:         "REGISTRAR_CACHE_TTL",
	DialTimeout: "REGISTRAR_CACHE_DIAL_TIMEOUT",
}

var tracingEnv = &tracing.Env{
	Enabled:     "REGISTRAR_TRACING_ENABLED",
	ServiceName: "REGISTRAR_TRACING_SERVICE_NAME",
	Endpoint:    "REGISTRAR_TRACING_ENDPOINT",
	Insecure:    "REGISTRAR_TRACING_INSECURE",
	SampleRatio: "REGISTRAR_TRACING_SAMPLE_RATIO",
}

// Config is the root configuration for the Registrar service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Cache           cache.Config         `toml:"cache"`
	Tracing         tracing.Config       `toml:"tracing"`
	Catalog         CatalogConfig        `toml:"catalog"`
	Workflow        WorkflowConfig       `toml:"workflow"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the REGISTRAR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRegistrarEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom behaves like Load with an explicit base file path. The overlay is
// resolved next to base.
func LoadFrom(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Tracing.Merge(&overlay.Tracing)
	c.Catalog.Merge(&overlay.Catalog)
	c.Workflow.Merge(&overlay.Workflow)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(DatabaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Tracing.Finalize(tracingEnv); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if err := c.Catalog.Finalize(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if c.Catalog.Source == CatalogSourceBlob && !c.Storage.Enabled() {
		return fmt.Errorf("catalog: blob source requires storage connection_string or service_url")
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.Database.ApplicationName == "" {
		c.Database.ApplicationName = "registrar"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRegistrarShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRegistrarVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(base string) string {
	if env := os.Getenv(EnvRegistrarEnv); env != "" {
		path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
