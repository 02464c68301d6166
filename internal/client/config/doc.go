// Package config loads runtime configuration for the countrytap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   country directory base URL
//	-t int      request timeout (seconds)
//	-d int      search debounce interval (milliseconds)
//	-p int      countries per page
//	-s string   storage type: sqlite, postgres, s3, memory
//	-db string  database DSN
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "500ms" or
// integer nanoseconds. S3 and provider settings are only read from JSON:
//
//	{
//	  "base_url": "https://restcountries.com/v3.1",
//	  "request_timeout": "10s",
//	  "debounce_interval": "500ms",
//	  "toast_duration": "5s",
//	  "storage_type": "s3",
//	  "s3_bucket": "countrytap",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// Note: This package does not read environment variables directly, except
// that the S3 backend falls back to the AWS default credential chain when no
// access key is configured.
package config
