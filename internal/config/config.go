package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"loadboard/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         string        `yaml:"port"`
	GinMode      string        `yaml:"gin_mode"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DataConfig holds schedule source settings
type DataConfig struct {
	ScheduleFile string `yaml:"schedule_file"`
	UploadDir    string `yaml:"upload_dir"`
	SheetName    string `yaml:"sheet_name"` // empty reads the first sheet
	MaxUploadMB  int    `yaml:"max_upload_mb"`
	CacheEntries int    `yaml:"cache_entries"`
}

// DashboardConfig holds presentation limits
type DashboardConfig struct {
	TopN int `yaml:"top_n"`
}

// LoggingConfig holds log verbosity
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			GinMode:      "debug",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Data: DataConfig{
			ScheduleFile: "cleaned_schedule.xlsx",
			UploadDir:    "uploads",
			MaxUploadMB:  20,
			CacheEntries: 8,
		},
		Dashboard: DashboardConfig{TopN: 10},
		Logging:   LoggingConfig{Level: "INFO"},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.ReadTimeout = getEnvDurationOrDefault("READ_TIMEOUT", config.Server.ReadTimeout)
	config.Server.WriteTimeout = getEnvDurationOrDefault("WRITE_TIMEOUT", config.Server.WriteTimeout)

	config.Data.ScheduleFile = getEnvOrDefault("SCHEDULE_FILE", config.Data.ScheduleFile)
	config.Data.UploadDir = getEnvOrDefault("UPLOAD_DIR", config.Data.UploadDir)
	config.Data.SheetName = getEnvOrDefault("SHEET_NAME", config.Data.SheetName)
	config.Data.MaxUploadMB = getEnvIntOrDefault("MAX_UPLOAD_MB", config.Data.MaxUploadMB)
	config.Data.CacheEntries = getEnvIntOrDefault("CACHE_ENTRIES", config.Data.CacheEntries)

	config.Dashboard.TopN = getEnvIntOrDefault("TOP_N", config.Dashboard.TopN)
	config.Logging.Level = getEnvOrDefault("LOG_LEVEL", config.Logging.Level)
}

func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("PORT must be numeric, got %q", config.Server.Port))
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("GIN_MODE must be debug, release or test, got %q", config.Server.GinMode))
	}
	if config.Dashboard.TopN <= 0 {
		return errors.ConfigInvalid("TOP_N must be positive")
	}
	if config.Data.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Data.UploadDir == "" {
		return errors.ConfigInvalid("upload directory is required")
	}
	return nil
}

// MaxUploadBytes converts the upload limit to bytes
func (c DataConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
