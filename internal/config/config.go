// Package config provides configuration for the analytics dashboard: where
// the dataset lives, how the server listens, and the tunables of the four
// views.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full dashboard configuration.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Server    ServerConfig    `yaml:"server"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig locates the dataset sources.
type DataConfig struct {
	// Dir is the directory holding the CSV sources.
	Dir string `yaml:"dir"`
	// Sources overrides the default source-to-file-name mapping.
	Sources map[string]string `yaml:"sources"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DashboardConfig holds the view tunables.
type DashboardConfig struct {
	// TopCities is the city-ranking size.
	TopCities int `yaml:"top_cities"`
	// MovingAverageWindow is the trailing window, in present data points,
	// of the late-delivery trend series.
	MovingAverageWindow int `yaml:"moving_average_window"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `yaml:"level"`
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{
		Data:   DataConfig{Dir: "data"},
		Server: ServerConfig{Addr: ":8080"},
		Dashboard: DashboardConfig{
			TopCities:           10,
			MovingAverageWindow: 7,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// WithDefaults fills unset fields with their default values.
func (c Config) WithDefaults() Config {
	defaults := NewConfig()
	if c.Data.Dir == "" {
		c.Data.Dir = defaults.Data.Dir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Dashboard.TopCities == 0 {
		c.Dashboard.TopCities = defaults.Dashboard.TopCities
	}
	if c.Dashboard.MovingAverageWindow == 0 {
		c.Dashboard.MovingAverageWindow = defaults.Dashboard.MovingAverageWindow
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	return c
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Dashboard.TopCities < 1 {
		return fmt.Errorf("dashboard.top_cities must be at least 1, got %d", c.Dashboard.TopCities)
	}
	if c.Dashboard.MovingAverageWindow < 1 {
		return fmt.Errorf("dashboard.moving_average_window must be at least 1, got %d",
			c.Dashboard.MovingAverageWindow)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv applies SHOPLYTICS_* environment overrides on top of the given
// configuration.
func LoadFromEnv(config Config) Config {
	if val := os.Getenv("SHOPLYTICS_DATA_DIR"); val != "" {
		config.Data.Dir = val
	}
	if val := os.Getenv("SHOPLYTICS_ADDR"); val != "" {
		config.Server.Addr = val
	}
	if val := os.Getenv("SHOPLYTICS_LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := os.Getenv("SHOPLYTICS_TOP_CITIES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Dashboard.TopCities = parsed
		}
	}
	if val := os.Getenv("SHOPLYTICS_MOVING_AVERAGE_WINDOW"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.Dashboard.MovingAverageWindow = parsed
		}
	}
	return config
}
