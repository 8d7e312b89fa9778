package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultStateDir is the directory curator keeps its state in, relative to
// the working directory.
const DefaultStateDir = ".curator"

// OracleConfig configures the remote categorization oracle. The oracle is
// best-effort: when disabled or unreachable, classification falls back to
// custom rules and the static table.
type OracleConfig struct {
	// Enabled turns the remote oracle on. It additionally requires the API
	// key environment variable to be set.
	Enabled bool `yaml:"enabled"`

	// Model is the model name sent with each categorization request.
	Model string `yaml:"model"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `yaml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// Config represents curator configuration options.
type Config struct {
	// Exclusions are literal names skipped during traversal at any depth.
	Exclusions []string `yaml:"exclusions"`

	// RuleDBPath is the path to the custom rule database.
	RuleDBPath string `yaml:"rule_db_path"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// AuditCapacity caps the number of retained audit log entries.
	AuditCapacity int `yaml:"audit_capacity"`

	// Oracle configures the remote categorization oracle.
	Oracle OracleConfig `yaml:"oracle"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Exclusions:    []string{"node_modules", ".git", "tmp", ".DS_Store", "AppData"},
		RuleDBPath:    filepath.Join(DefaultStateDir, "rules.db"),
		LogLevel:      "info",
		AuditCapacity: 100,
		Oracle: OracleConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "CURATOR_ORACLE_API_KEY",
			Timeout:   30 * time.Second,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file returns the defaults without error; a malformed file
// returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads configuration from .curator/config.yaml in the working
// directory.
func LoadDefault() (*Config, error) {
	return LoadConfig(filepath.Join(DefaultStateDir, "config.yaml"))
}

// Validate checks configuration invariants, normalizing omitted values back
// to their defaults.
func (c *Config) Validate() error {
	if c.AuditCapacity < 0 {
		return fmt.Errorf("audit_capacity must not be negative")
	}
	if c.AuditCapacity == 0 {
		c.AuditCapacity = 100
	}
	if c.RuleDBPath == "" {
		c.RuleDBPath = filepath.Join(DefaultStateDir, "rules.db")
	}
	if c.Oracle.Timeout < 0 {
		return fmt.Errorf("oracle timeout must not be negative")
	}
	if c.Oracle.Timeout == 0 {
		c.Oracle.Timeout = 30 * time.Second
	}
	if c.Oracle.APIKeyEnv == "" {
		c.Oracle.APIKeyEnv = "CURATOR_ORACLE_API_KEY"
	}
	return nil
}

// OracleAPIKey resolves the configured API key from the environment.
// An empty result means the oracle cannot be used.
func (c *Config) OracleAPIKey() string {
	return os.Getenv(c.Oracle.APIKeyEnv)
}
