package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./newsroom.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile  string `long:"sources-file" env:"SOURCES_FILE" description:"Path to the feed sources YAML file (embedded defaults used when empty)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Ingestion configuration
	FullSyncInterval int  `long:"full-sync-interval" env:"FULL_SYNC_INTERVAL" default:"6" description:"Combined RSS and scraping ingestion interval in hours"`
	RSSSyncInterval  int  `long:"rss-sync-interval" env:"RSS_SYNC_INTERVAL" default:"45" description:"RSS-only ingestion interval in minutes"`
	PublishInterval  int  `long:"publish-interval" env:"PUBLISH_INTERVAL" default:"60" description:"Scheduled content publication interval in seconds"`
	SourceDelay      int  `long:"source-delay" env:"SOURCE_DELAY" default:"5" description:"Delay between feed sources in seconds"`
	HTTPTimeout      int  `long:"http-timeout" env:"HTTP_TIMEOUT" default:"8" description:"Timeout for outbound HTTP requests in seconds"`
	NoAutoSync       bool `long:"no-auto-sync" env:"NO_AUTO_SYNC" description:"Disable the recurring ingestion timers at startup"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Newsroom/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:           raw.DBPath,
		Port:             raw.Port,
		SourcesFile:      raw.SourcesFile,
		APIAccessKey:     raw.APIAccessKey,
		FullSyncInterval: raw.FullSyncInterval,
		RSSSyncInterval:  raw.RSSSyncInterval,
		PublishInterval:  raw.PublishInterval,
		SourceDelay:      raw.SourceDelay,
		HTTPTimeout:      raw.HTTPTimeout,
		AutoSync:         !raw.NoAutoSync,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
