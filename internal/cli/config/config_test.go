package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig

	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected BaseURL 'http://localhost:8080', got '%s'", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %s", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected Logging Level 'INFO', got '%s'", cfg.Logging.Level)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataport.yaml")

	content := `
server:
  baseUrl: "https://importer.example.com"
  timeout: 30s
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DATAPORT_CONFIG_PATH", path)

	cfg, loadedPath, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://importer.example.com" {
		t.Errorf("Expected BaseURL from file, got '%s'", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %s", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level DEBUG, got '%s'", cfg.Logging.Level)
	}
	if loadedPath != path {
		t.Errorf("Expected loaded path %s, got %s", path, loadedPath)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataport.yaml")

	content := `
server:
  baseUrl: "https://from-file.example.com"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DATAPORT_CONFIG_PATH", path)
	t.Setenv("DATAPORT_SERVER_URL", "https://from-env.example.com")
	t.Setenv("DATAPORT_TIMEOUT", "1m")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://from-env.example.com" {
		t.Errorf("Expected env to override file, got '%s'", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout != time.Minute {
		t.Errorf("Expected timeout 1m, got %s", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected level WARN, got '%s'", cfg.Logging.Level)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := DefaultConfig
	cfg.Server.BaseURL = "not-a-url"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for bad base URL")
	}

	cfg = DefaultConfig
	cfg.Logging.Level = "LOUD"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for bad log level")
	}

	cfg = DefaultConfig
	cfg.Server.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for negative timeout")
	}
}
