package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// StoreConfig points at the data sources: the remote example/upload
// store and the bundled local example directory.
type StoreConfig struct {
	BaseURL     string        `yaml:"base_url" envconfig:"BASE_URL" default:"http://localhost:9000/api/files"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"10s"`
	ExamplesDir string        `yaml:"examples_dir" envconfig:"EXAMPLES_DIR" default:"examples"`
}

// PipelineConfig tunes the render pipeline.
type PipelineConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
	MaxCandidates  int           `yaml:"max_candidates" envconfig:"MAX_CANDIDATES" default:"5"`
}

// RateLimitConfig contains HTTP rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// WebSocketConfig contains WebSocket hub configuration.
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
}

// Load builds the configuration. Precedence per field: an explicitly set
// CHARTSCOUT_* env var wins, then the YAML file named by CHARTSCOUT_CONFIG
// (if it exists), then the struct-tag default.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CHARTSCOUT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := os.Getenv("CHARTSCOUT_CONFIG")
	if configFile == "" {
		configFile = "chartscout.yml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays the YAML file onto the env-derived config. The
// env config already carries the struct-tag defaults, so zero checks
// cannot tell "env set" from "default applied"; a file value is taken
// whenever the file set the field and the matching env var is absent.
func mergeConfigs(fileCfg, envCfg Config) Config {
	out := envCfg
	if fileCfg.Server.Port != 0 && !envSet("SERVER_PORT") {
		out.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		out.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		out.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Server.IdleTimeout != 0 && !envSet("SERVER_IDLE_TIMEOUT") {
		out.Server.IdleTimeout = fileCfg.Server.IdleTimeout
	}
	if fileCfg.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		out.Server.ShutdownTimeout = fileCfg.Server.ShutdownTimeout
	}
	if fileCfg.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		out.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		out.Logging.Format = fileCfg.Logging.Format
	}
	if fileCfg.Store.BaseURL != "" && !envSet("STORE_BASE_URL") {
		out.Store.BaseURL = fileCfg.Store.BaseURL
	}
	if fileCfg.Store.Timeout != 0 && !envSet("STORE_TIMEOUT") {
		out.Store.Timeout = fileCfg.Store.Timeout
	}
	if fileCfg.Store.ExamplesDir != "" && !envSet("STORE_EXAMPLES_DIR") {
		out.Store.ExamplesDir = fileCfg.Store.ExamplesDir
	}
	if fileCfg.Pipeline.RequestTimeout != 0 && !envSet("PIPELINE_REQUEST_TIMEOUT") {
		out.Pipeline.RequestTimeout = fileCfg.Pipeline.RequestTimeout
	}
	if fileCfg.Pipeline.MaxCandidates != 0 && !envSet("PIPELINE_MAX_CANDIDATES") {
		out.Pipeline.MaxCandidates = fileCfg.Pipeline.MaxCandidates
	}
	if fileCfg.RateLimit.RPS != 0 && !envSet("RATE_LIMIT_RPS") {
		out.RateLimit.RPS = fileCfg.RateLimit.RPS
	}
	if fileCfg.RateLimit.Burst != 0 && !envSet("RATE_LIMIT_BURST") {
		out.RateLimit.Burst = fileCfg.RateLimit.Burst
	}
	if fileCfg.WebSocket.ReadBufferSize != 0 && !envSet("WEBSOCKET_READ_BUFFER_SIZE") {
		out.WebSocket.ReadBufferSize = fileCfg.WebSocket.ReadBufferSize
	}
	if fileCfg.WebSocket.WriteBufferSize != 0 && !envSet("WEBSOCKET_WRITE_BUFFER_SIZE") {
		out.WebSocket.WriteBufferSize = fileCfg.WebSocket.WriteBufferSize
	}
	return out
}

func envSet(suffix string) bool {
	_, ok := os.LookupEnv("CHARTSCOUT_" + suffix)
	return ok
}

// Validate checks the configuration for values the service cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if c.Store.BaseURL == "" {
		return fmt.Errorf("store base_url is required")
	}
	if c.Pipeline.MaxCandidates < 1 {
		return fmt.Errorf("pipeline max_candidates must be at least 1")
	}
	if c.RateLimit.Enabled && c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate_limit rps must be positive when enabled")
	}
	return nil
}
