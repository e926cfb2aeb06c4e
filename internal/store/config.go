package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"stock-backend/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. FIN_FMP_BASE_URL.
const EnvPrefix = "FIN"

type Config struct {
	FMP struct {
		BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL"`
		APIKeyEnv         string        `yaml:"api_key_env" envconfig:"API_KEY_ENV"`
		Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
		RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
		Burst             int           `yaml:"burst" envconfig:"BURST"`
		PrimaryLimit      int           `yaml:"primary_limit" envconfig:"PRIMARY_LIMIT"`
	} `yaml:"fmp" envconfig:"FMP"`
	Server struct {
		Addr            string        `yaml:"addr" envconfig:"ADDR"`
		RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	} `yaml:"server" envconfig:"SERVER"`
	Logging logger.LogConfig `yaml:"logging" envconfig:"LOGGING"`
}

// APIKey resolves the FMP key from the environment variable named in the
// config.
func (c *Config) APIKey() string {
	return os.Getenv(c.FMP.APIKeyEnv)
}

func (c *Config) Validate() error {
	if c.FMP.BaseURL == "" {
		return errors.New("fmp.base_url cannot be empty")
	}
	if c.FMP.Timeout <= 0 {
		return fmt.Errorf("fmp.timeout must be positive, got %s", c.FMP.Timeout)
	}
	if c.FMP.RequestsPerSecond < 0 {
		return fmt.Errorf("fmp.requests_per_second cannot be negative, got %.2f", c.FMP.RequestsPerSecond)
	}
	if c.FMP.PrimaryLimit <= 0 {
		return fmt.Errorf("fmp.primary_limit must be positive, got %d", c.FMP.PrimaryLimit)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.FMP.BaseURL == "" {
		c.FMP.BaseURL = "https://financialmodelingprep.com/stable"
	}
	if c.FMP.APIKeyEnv == "" {
		c.FMP.APIKeyEnv = "FMP_API_KEY"
	}
	if c.FMP.Timeout == 0 {
		c.FMP.Timeout = 15 * time.Second
	}
	if c.FMP.Burst == 0 {
		c.FMP.Burst = 1
	}
	if c.FMP.PrimaryLimit == 0 {
		c.FMP.PrimaryLimit = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 2 * time.Minute
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// LoadConfig reads path (a missing file means all defaults), overlays FIN_*
// environment variables and validates the result.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
