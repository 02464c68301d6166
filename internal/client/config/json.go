package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/countrytap/internal/flagx"
	"github.com/dmitrijs2005/countrytap/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "500ms" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL          string         `json:"base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	DebounceInterval timex.Duration `json:"debounce_interval"`
	ToastDuration    timex.Duration `json:"toast_duration"`
	PageSize         int            `json:"page_size"`
	StorageType      string         `json:"storage_type"`
	DatabaseDSN      string         `json:"database_dsn"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
	S3Prefix         string         `json:"s3_prefix"`
	ProviderSecret   string         `json:"provider_secret"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file given by
// -c or -config. Fields absent from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.BaseURL, jc.BaseURL)
	setString(&cfg.StorageType, jc.StorageType)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.ProviderSecret, jc.ProviderSecret)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DebounceInterval.Duration > 0 {
		cfg.DebounceInterval = jc.DebounceInterval.Duration
	}
	if jc.ToastDuration.Duration > 0 {
		cfg.ToastDuration = jc.ToastDuration.Duration
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
