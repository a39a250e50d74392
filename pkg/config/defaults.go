package config

import "time"

// Timeouts & Durations
const (
	// DefaultCatalogTimeout is the per-request timeout for the integrations catalog
	DefaultCatalogTimeout = 10 * time.Second

	// DefaultCatalogRetryWait is the minimum wait between catalog retries
	DefaultCatalogRetryWait = 500 * time.Millisecond
)

// Retry Counts
const (
	// DefaultCatalogMaxRetries is the maximum number of retries for catalog requests
	DefaultCatalogMaxRetries = 3
)

// Cache Sizes
const (
	// DefaultCatalogCacheSize is the number of catalog responses kept in memory
	DefaultCatalogCacheSize = 16
)

// File Permissions
const (
	// PermDirectory is the file permission for directories
	PermDirectory = 0755

	// PermConfigFile is the file permission for config files
	PermConfigFile = 0644
)

// Path Constants - Local
const (
	// LocalConfigDir is the base directory for buildinfo configuration
	LocalConfigDir = ".buildinfo"

	// LocalConfigFile is the filename for the main config
	LocalConfigFile = "config.json"
)

// Environment Variables
const (
	// EnvCatalogURL overrides the catalog URL from the config file
	EnvCatalogURL = "BUILDINFO_CATALOG_URL"

	// EnvConfigDir overrides the directory holding config.json
	EnvConfigDir = "BUILDINFO_CONFIG_DIR"
)
