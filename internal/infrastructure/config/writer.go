package config

import (
	"fmt"
	"os"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Prosync Configuration

backend:
  base_url: http://localhost:11434/v1
  model: deepseek-r1
  max_retries: 3
  backoff_seconds: 2

audit:
  # path: custom path to the audit database (defaults to .prosync/audit.db)

extractor:
  cache_ttl_minutes: 60
  timeout_seconds: 30

apply:
  field_timeout_seconds: 30
`

// WriteDefault creates the .prosync directory and writes a default
// config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
