// Package config manages the fabric-agent configuration file at
// ~/.config/fabric-agent/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config is the persisted fabric-agent configuration. Environment variables
// (FABRIC_PROVIDER, FABRIC_MODEL, FABRIC_PATTERNS_DIR) override file values.
type Config struct {
	LLM         LLMConfig `json:"llm,omitempty"`
	PatternsDir string    `json:"patterns_dir,omitempty"` // defaults to ~/.config/fabric/patterns
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"` // "claudecode", "geminicli", "openaiapi"
	Model    string `json:"model,omitempty"`    // Model name
}

var (
	configDir  string
	configPath string
)

func init() {
	homeDir := os.Getenv("HOME")
	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	}
	configDir = filepath.Join(homeDir, ".config", "fabric-agent")
	configPath = filepath.Join(configDir, "config.json")
}

// ensureConfigDir creates the config directory if it doesn't exist
func ensureConfigDir() error {
	return os.MkdirAll(configDir, 0700)
}

// Load reads the configuration file and applies environment overrides.
// A missing file yields defaults, not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("FABRIC_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("FABRIC_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("FABRIC_PATTERNS_DIR"); v != "" {
		cfg.PatternsDir = v
	}

	return cfg, nil
}

// Save writes the configuration to file.
func Save(cfg *Config) error {
	if err := ensureConfigDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateLLM updates only the LLM section of the configuration.
func UpdateLLM(provider, model string) error {
	cfg, err := Load()
	if err != nil {
		cfg = &Config{}
	}
	cfg.LLM.Provider = provider
	cfg.LLM.Model = model
	return Save(cfg)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	return configPath
}

// SuggestCatalogPath returns the path of the optional suggestion catalog
// override (~/.config/fabric-agent/suggest.yaml).
func SuggestCatalogPath() string {
	return filepath.Join(configDir, "suggest.yaml")
}
