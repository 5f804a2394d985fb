package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DataConfig locates the catalog source files on disk.
type DataConfig struct {
	// Dir is the directory holding the per-platform catalog files.
	Dir string `yaml:"dir" envconfig:"DIR" default:"data"`
	// Files overrides the default file name for a source, keyed by source ID
	// (e.g. "netflix:my_netflix_export.csv").
	Files map[string]string `yaml:"files" envconfig:"FILES"`
}

// AnalyticsConfig carries the tunables of the aggregation layer.
type AnalyticsConfig struct {
	// HomeMarketAliases are matched as case-sensitive substrings of the raw
	// country field when computing the domestic flag. One canonical set is
	// used for every source.
	HomeMarketAliases []string `yaml:"home_market_aliases" envconfig:"HOME_MARKET_ALIASES" default:"United States,US"`
	// DefaultCutoffYear splits recent vs older content when the caller does
	// not supply a cutoff.
	DefaultCutoffYear int `yaml:"default_cutoff_year" envconfig:"DEFAULT_CUTOFF_YEAR" default:"2015"`
	// MinTitleYear drops obviously bogus years from the volume timeline.
	MinTitleYear int `yaml:"min_title_year" envconfig:"MIN_TITLE_YEAR" default:"1920"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("OTT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// getConfigFilePath returns the config file location, overridable via env.
func getConfigFilePath() string {
	if path := os.Getenv("OTT_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Server.WriteTimeout == 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Data.Dir == "" {
		envConfig.Data.Dir = fileConfig.Data.Dir
	}
	if len(envConfig.Data.Files) == 0 {
		envConfig.Data.Files = fileConfig.Data.Files
	}
	if len(envConfig.Analytics.HomeMarketAliases) == 0 {
		envConfig.Analytics.HomeMarketAliases = fileConfig.Analytics.HomeMarketAliases
	}
	if envConfig.Analytics.DefaultCutoffYear == 0 {
		envConfig.Analytics.DefaultCutoffYear = fileConfig.Analytics.DefaultCutoffYear
	}
	if envConfig.Analytics.MinTitleYear == 0 {
		envConfig.Analytics.MinTitleYear = fileConfig.Analytics.MinTitleYear
	}

	return envConfig
}

// validate performs sanity checks that would otherwise surface as confusing
// runtime failures.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if len(c.Analytics.HomeMarketAliases) == 0 {
		return fmt.Errorf("home market aliases must not be empty")
	}
	if c.Analytics.DefaultCutoffYear < c.Analytics.MinTitleYear {
		return fmt.Errorf("default cutoff year %d precedes min title year %d",
			c.Analytics.DefaultCutoffYear, c.Analytics.MinTitleYear)
	}
	return nil
}

// SourcePath resolves the on-disk path of a source's file, honoring any
// per-source override from the Files map.
func (c *Config) SourcePath(sourceID, defaultFile string) string {
	if override, ok := c.Data.Files[sourceID]; ok && override != "" {
		return filepath.Join(c.Data.Dir, override)
	}
	return filepath.Join(c.Data.Dir, defaultFile)
}
