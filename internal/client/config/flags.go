package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/countrytap/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the country directory API
//	-t int      request timeout (in seconds)
//	-d int      search debounce interval (in milliseconds)
//	-p int      countries per page
//	-s string   storage type: sqlite, postgres, s3 or memory
//	-db string  database DSN (SQLite file path or PostgreSQL URL)
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-t", "-d", "-p", "-s", "-db", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "country directory base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	debounce := fs.Int("d", int(cfg.DebounceInterval.Milliseconds()), "search debounce interval (in milliseconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "countries per page")
	fs.StringVar(&cfg.StorageType, "s", cfg.StorageType, "storage type: sqlite, postgres, s3, memory")
	fs.StringVar(&cfg.DatabaseDSN, "db", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.DebounceInterval = time.Duration(*debounce) * time.Millisecond
}
