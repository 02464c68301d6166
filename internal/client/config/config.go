package config

import "time"

// Storage backends for the local store.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
	StorageMemory   = "memory"
)

// Config holds runtime settings for the countrytap CLI.
//
// Units: RequestTimeout, DebounceInterval and ToastDuration are
// time.Duration values.
type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	DebounceInterval time.Duration
	ToastDuration    time.Duration
	PageSize         int

	StorageType string
	DatabaseDSN string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string

	ProviderSecret string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://restcountries.com/v3.1"
	c.RequestTimeout = 10 * time.Second
	c.DebounceInterval = 500 * time.Millisecond
	c.ToastDuration = 5 * time.Second
	c.PageSize = 20
	c.StorageType = StorageSQLite
	c.DatabaseDSN = "countrytap.db"
	c.S3Region = "us-east-1"
	c.S3Prefix = "countrytap/"
	c.ProviderSecret = "countrytap-demo-provider"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
