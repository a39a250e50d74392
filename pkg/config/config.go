package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CatalogConfig points at the integrations catalog. An empty URL disables it.
type CatalogConfig struct {
	URL            string `json:"url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	MaxRetries     int    `json:"max_retries,omitempty"`
	CacheSize      int    `json:"cache_size,omitempty"`
}

// Timeout returns the configured request timeout
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Config struct {
	Catalog  CatalogConfig `json:"catalog"`
	EnvFiles []string      `json:"env_files,omitempty"` // .env files merged into the detection environment
	Verbose  bool          `json:"verbose,omitempty"`
}

func GetConfigPath() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, LocalConfigFile)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(LocalConfigDir, LocalConfigFile)
	}
	return filepath.Join(homeDir, LocalConfigDir, LocalConfigFile)
}

func LoadConfig() (*Config, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := &Config{}
		config.applyDefaults()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) SaveConfig() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, PermDirectory); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, PermConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CatalogURL returns the catalog URL, letting the environment override the file
func (c *Config) CatalogURL() string {
	if url := os.Getenv(EnvCatalogURL); url != "" {
		return url
	}
	return c.Catalog.URL
}

func (c *Config) applyDefaults() {
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = int(DefaultCatalogTimeout.Seconds())
	}
	if c.Catalog.MaxRetries <= 0 {
		c.Catalog.MaxRetries = DefaultCatalogMaxRetries
	}
	if c.Catalog.CacheSize <= 0 {
		c.Catalog.CacheSize = DefaultCatalogCacheSize
	}
}
