package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// session backends
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration for durable preferences"`
	Search   SearchConfig   `yaml:"search" json:"search" jsonschema:"description=Meal search endpoint configuration"`
	Location LocationConfig `yaml:"location" json:"location" jsonschema:"description=Location fallback configuration"`
	Session  SessionConfig  `yaml:"session" json:"session" jsonschema:"description=Session state storage configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:mealfinder.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// SearchConfig holds settings of the remote meal search call
type SearchConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,default=http://localhost:8000/api/v1/meals/find,description=Meal search endpoint URL"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"default=test-free-key,description=Static API key sent in X-API-Key header (can use environment variable)"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Search request timeout"`
	Debounce time.Duration `yaml:"debounce" json:"debounce" jsonschema:"default=500ms,description=Delay collapsing repeated search triggers"`
}

// LocationConfig holds the coordinate used when the browser can't report one
type LocationConfig struct {
	FallbackLat  float64 `yaml:"fallback_lat" json:"fallback_lat" jsonschema:"default=40.7128,minimum=-90,maximum=90,description=Fallback latitude"`
	FallbackLon  float64 `yaml:"fallback_lon" json:"fallback_lon" jsonschema:"default=-74.006,minimum=-180,maximum=180,description=Fallback longitude"`
	FallbackName string  `yaml:"fallback_name" json:"fallback_name" jsonschema:"default=New York City,description=Fallback location name"`
}

// SessionConfig holds session state storage settings
type SessionConfig struct {
	Backend       string        `yaml:"backend" json:"backend" jsonschema:"default=memory,enum=memory,enum=redis,description=Session storage backend"`
	RedisURL      string        `yaml:"redis_url" json:"redis_url" jsonschema:"description=Redis URL for the redis backend"`
	TTL           time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=12h,description=Idle time after which a session is dropped"`
	SweepInterval time.Duration `yaml:"sweep_interval" json:"sweep_interval" jsonschema:"default=10m,description=How often expired memory sessions are removed"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:mealfinder.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// search
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = "http://localhost:8000/api/v1/meals/find"
	}
	if c.Search.APIKey == "" {
		c.Search.APIKey = "test-free-key"
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 30 * time.Second
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 500 * time.Millisecond
	}

	// location, zero coordinates mean not configured
	if c.Location.FallbackLat == 0 && c.Location.FallbackLon == 0 {
		c.Location.FallbackLat = 40.7128
		c.Location.FallbackLon = -74.0060
		if c.Location.FallbackName == "" {
			c.Location.FallbackName = "New York City"
		}
	}

	// session
	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendMemory
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 12 * time.Hour
	}
	if c.Session.SweepInterval == 0 {
		c.Session.SweepInterval = 10 * time.Minute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate search config
	u, err := url.Parse(cfg.Search.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("search.endpoint must be an absolute URL, got %q", cfg.Search.Endpoint)
	}
	if cfg.Search.Timeout < 100*time.Millisecond {
		return fmt.Errorf("search.timeout must be at least 100ms")
	}
	if cfg.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must be non-negative")
	}

	// validate location config
	if cfg.Location.FallbackLat < -90 || cfg.Location.FallbackLat > 90 {
		return fmt.Errorf("location.fallback_lat must be between -90 and 90")
	}
	if cfg.Location.FallbackLon < -180 || cfg.Location.FallbackLon > 180 {
		return fmt.Errorf("location.fallback_lon must be between -180 and 180")
	}

	// validate session config
	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url is required for redis backend")
		}
	default:
		return fmt.Errorf("session.backend must be memory or redis, got %q", cfg.Session.Backend)
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSearchConfig returns search endpoint configuration
func (c *Config) GetSearchConfig() SearchConfig {
	return c.Search
}
