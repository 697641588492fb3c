// Package config provides configuration management for shifu.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the shifu configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	AI     AIConfig     `yaml:"ai"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"` // Address the HTTP server binds to
	LogLevel   string `yaml:"log_level"`   // debug, info, warn, error
}

// StoreConfig holds storage settings.
type StoreConfig struct {
	DBPath string `yaml:"db_path"` // SQLite database path (empty = ~/.shifu/state.db)
}

// AIConfig holds completion-service settings.
type AIConfig struct {
	APIKey       string `yaml:"api_key"`        // Bearer credential (usually via OPENAI_API_KEY)
	Model        string `yaml:"model"`          // Completion model
	MaxTokens    int    `yaml:"max_tokens"`     // Output token budget per request
	BaseURL      string `yaml:"base_url"`       // Completions endpoint override
	MaxAttempts  int    `yaml:"max_attempts"`   // Retry budget for a validated recommendation
	RetryDelayMs int    `yaml:"retry_delay_ms"` // Delay between attempts (0 = none)
	MinAttempts  int    `yaml:"min_attempts"`   // Sample threshold for a syllable to count
	TimeoutSecs  int    `yaml:"timeout_secs"`   // Per-attempt timeout
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   "info",
		},
		Store: StoreConfig{
			DBPath: "", // resolved to ~/.shifu/state.db by the store
		},
		AI: AIConfig{
			Model:        "gpt-4o-mini",
			MaxTokens:    200,
			BaseURL:      "",
			MaxAttempts:  4,
			RetryDelayMs: 0,
			MinAttempts:  10,
			TimeoutSecs:  10,
		},
	}
}

// Load loads configuration from the default path (~/.shifu/config.yaml).
func Load() (*Config, error) {
	return LoadFromFile(DefaultConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DefaultConfigFile returns the path to the main configuration file.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shifu", "config.yaml")
	}
	return filepath.Join(home, ".shifu", "config.yaml")
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables override config file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SHIFU_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv("SHIFU_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Server.LogLevel = v
		}
	}
	if v := os.Getenv("SHIFU_DB_PATH"); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv("SHIFU_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("SHIFU_OPENAI_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("SHIFU_AI_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.AI.MaxAttempts = n
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
}

// Validate checks config values.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Server.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if c.AI.MaxAttempts <= 0 {
		return fmt.Errorf("ai.max_attempts must be positive, got %d", c.AI.MaxAttempts)
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be positive, got %d", c.AI.MaxTokens)
	}
	if c.AI.MinAttempts <= 0 {
		return fmt.Errorf("ai.min_attempts must be positive, got %d", c.AI.MinAttempts)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
