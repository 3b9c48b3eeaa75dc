// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for prosync configuration.
	DefaultConfigDir = ".prosync"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultAuditFile is the audit log database file name.
	DefaultAuditFile = "audit.db"
	// DefaultCacheDir is the extractor cache directory name.
	DefaultCacheDir = "cache"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Backend   BackendConfig   `yaml:"backend,omitempty"`
	Audit     AuditConfig     `yaml:"audit,omitempty"`
	Extractor ExtractorConfig `yaml:"extractor,omitempty"`
	Apply     ApplyConfig     `yaml:"apply,omitempty"`
}

// BackendConfig holds configuration for the text-generation backend.
type BackendConfig struct {
	// BaseURL is the OpenAI-compatible endpoint of the local backend.
	BaseURL string `yaml:"base_url,omitempty"`
	// Model is the served model name (prefix match against the model tag).
	Model string `yaml:"model,omitempty"`
	// MaxRetries bounds retries of transient backend errors.
	MaxRetries int `yaml:"max_retries,omitempty"`
	// BackoffSeconds is the linear backoff unit between retries.
	BackoffSeconds int `yaml:"backoff_seconds,omitempty"`
}

// AuditConfig holds configuration for the audit log store.
type AuditConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// ExtractorConfig holds configuration for the portfolio extractor.
type ExtractorConfig struct {
	// CacheDir is the directory for cached extraction results.
	CacheDir string `yaml:"cache_dir,omitempty"`
	// CacheTTLMinutes is how long a cached extraction stays fresh.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes,omitempty"`
	// TimeoutSeconds bounds the HTTP fetch of the portfolio source.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// ApplyConfig holds configuration for automated change application.
type ApplyConfig struct {
	// FieldTimeoutSeconds bounds one automated field update.
	FieldTimeoutSeconds int `yaml:"field_timeout_seconds,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:11434/v1",
			Model:          "deepseek-r1",
			MaxRetries:     3,
			BackoffSeconds: 2,
		},
		Extractor: ExtractorConfig{
			CacheTTLMinutes: 60,
			TimeoutSeconds:  30,
		},
		Apply: ApplyConfig{
			FieldTimeoutSeconds: 30,
		},
	}
}

// Load loads configuration from the .prosync directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'prosync init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyPathDefaults(basePath)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("PROSYNC_BACKEND_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if model := os.Getenv("PROSYNC_MODEL"); model != "" {
		c.Backend.Model = model
	}
}

// applyPathDefaults fills path settings left empty by the config file.
func (c *Config) applyPathDefaults(basePath string) {
	if c.Audit.Path == "" {
		c.Audit.Path = filepath.Join(basePath, DefaultConfigDir, DefaultAuditFile)
	}
	if c.Extractor.CacheDir == "" {
		c.Extractor.CacheDir = filepath.Join(basePath, DefaultConfigDir, DefaultCacheDir)
	}
}

// ConfigDir returns the path to the .prosync config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a prosync config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
