package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	domainerrors "tracker-mcp/pkg/domain/errors"
)

// Simplified configuration with only essential fields
type Config struct {
	// Upstream issue tracker
	APIURL     string `env:"TRACKER_API_URL"`
	APIToken   string `env:"TRACKER_API_TOKEN"`
	ProjectKey string `env:"TRACKER_PROJECT_KEY"`

	// Tool behavior
	DefaultIssueTypeID string        `env:"TRACKER_DEFAULT_ISSUE_TYPE_ID"`
	SearchPageLimit    int           `env:"TRACKER_SEARCH_PAGE_LIMIT"`
	HTTPTimeout        time.Duration `env:"TRACKER_HTTP_TIMEOUT"`

	// Transport settings
	TransportType string `env:"MCP_TRANSPORT"`
	HTTPAddr      string `env:"MCP_HTTP_ADDR"`
	HTTPPort      int    `env:"MCP_HTTP_PORT"`

	// Logging settings
	LogLevel string `env:"MCP_LOG_LEVEL"`

	// Service identification
	ServiceName    string `env:"MCP_SERVICE_NAME"`
	ServiceVersion string `env:"MCP_SERVICE_VERSION"`
}

// Simple configuration loading - just use defaults + environment variables
func Load(envFile string) (*Config, error) {
	cfg := DefaultConfig()

	// Load environment file if specified
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	// Apply environment variables
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:             "https://effy.freshrelease.com",
		APIToken:           "",
		ProjectKey:         "FBOTS",
		DefaultIssueTypeID: "5", // "Task" in the default project
		SearchPageLimit:    10,
		HTTPTimeout:        20 * time.Second,
		TransportType:      "stdio",
		HTTPAddr:           "localhost",
		HTTPPort:           8080,
		LogLevel:           "info",
		ServiceName:        "issue-tracker-mcp",
		ServiceVersion:     "dev",
	}
}

// Simple environment variable loading for essential fields only
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TRACKER_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TRACKER_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("TRACKER_PROJECT_KEY"); v != "" {
		cfg.ProjectKey = v
	}
	if v := os.Getenv("TRACKER_DEFAULT_ISSUE_TYPE_ID"); v != "" {
		cfg.DefaultIssueTypeID = v
	}
	if v := os.Getenv("TRACKER_SEARCH_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SearchPageLimit = n
		}
	}
	if v := os.Getenv("TRACKER_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("MCP_TRANSPORT"); v != "" {
		cfg.TransportType = v
	}
	if v := os.Getenv("MCP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("MCP_HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTPPort = n
		}
	}
	if v := os.Getenv("MCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MCP_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
	if v := os.Getenv("MCP_SERVICE_VERSION"); v != "" {
		cfg.ServiceVersion = v
	}
}

func invalid(message string) error {
	return domainerrors.New(domainerrors.CodeConfigInvalid, "config", message, nil)
}

// Simple validation for essential fields only
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return invalid("api_url is required")
	}
	if c.ProjectKey == "" {
		return invalid("project_key is required")
	}
	if c.SearchPageLimit <= 0 {
		return invalid("search_page_limit must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return invalid("http_timeout must be positive")
	}
	validTransports := []string{"stdio", "http", "sse"}
	valid := false
	for _, t := range validTransports {
		if c.TransportType == t {
			valid = true
			break
		}
	}
	if !valid {
		return invalid("transport must be one of: stdio, http, sse")
	}
	validLogLevels := []string{"debug", "info", "warn", "error"}
	valid = false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return invalid("log_level must be one of: debug, info, warn, error")
	}
	return nil
}
