// Package config loads the CLI configuration from a YAML file with
// environment-variable overrides, following defaults < file < env
// precedence. A .env file in the working directory is honored before
// the environment is read.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete CLI configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds backend connection settings
type ServerConfig struct {
	// BaseURL is the import backend's base URL.
	BaseURL string `yaml:"baseUrl"`
	// Timeout bounds one whole import command. Zero means no deadline,
	// matching the core's no-timeout contract.
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig Default configuration values
var DefaultConfig = Config{
	Server: ServerConfig{
		BaseURL: "http://localhost:8080",
		Timeout: 0,
	},
	Logging: LoggingConfig{
		Level: "INFO",
	},
}

// Load loads configuration from multiple sources in order of precedence:
// 1. Environment variables (highest precedence)
// 2. Configuration file
// 3. Default values (lowest precedence)
func Load() (*Config, string, error) {
	config := DefaultConfig

	// .env in the working directory, if present
	_ = godotenv.Load()

	path, err := loadFromFile(&config)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	loadFromEnv(&config)

	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, path, nil
}

func loadFromFile(config *Config) (string, error) {
	home, _ := os.UserHomeDir()

	configPaths := []string{
		os.Getenv("DATAPORT_CONFIG_PATH"), // Custom path from environment
		"./dataport.yaml",                 // Current directory
	}
	if home != "" {
		configPaths = append(configPaths, filepath.Join(home, ".dataport", "config.yaml"))
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

func loadFromEnv(config *Config) {
	if val := os.Getenv("DATAPORT_SERVER_URL"); val != "" {
		config.Server.BaseURL = val
	}
	if val := os.Getenv("DATAPORT_TIMEOUT"); val != "" {
		if timeout, err := time.ParseDuration(val); err == nil {
			config.Server.Timeout = timeout
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base URL is required")
	}
	if !strings.HasPrefix(c.Server.BaseURL, "http://") && !strings.HasPrefix(c.Server.BaseURL, "https://") {
		return fmt.Errorf("invalid server base URL: %s", c.Server.BaseURL)
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Server.Timeout)
	}

	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
