package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage and subscriptions
	DBPath   string `long:"db-path" env:"DB_PATH" default:"./pod-comb.db" description:"SQLite database file"`
	FeedsDir string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing podcast subscription files"`

	// HTTP service
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port" validate:"numeric"`
	BaseUrl           string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://podcasts.example.com)" validate:"omitempty,url"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for podcast refreshes" validate:"min=1"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"30" description:"Scheduler interval in seconds" validate:"min=1"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Parse result cache
	RedisAddr     string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for caching ad-hoc URL parses (optional)" validate:"omitempty,hostname_port"`
	ParseCacheTTL int    `long:"parse-cache-ttl" env:"PARSE_CACHE_TTL" default:"300" description:"Seconds a cached URL parse stays valid" validate:"min=1"`

	// Fetching
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"pod-comb/1.0" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds" validate:"min=1"`
	FetchRetries int    `long:"fetch-retries" env:"FETCH_RETRIES" default:"2" description:"Retries for feed fetches answered with a server error" validate:"min=0"`

	// One-shot mode
	URL         string `long:"url" description:"Parse the podcast feed at this URL, print the result and exit" validate:"omitempty,url,excluded_with=File"`
	File        string `long:"file" description:"Parse the podcast feed in this file, print the result and exit"`
	OptionsFile string `long:"options" env:"OPTIONS_FILE" description:"YAML or JSON parse options for one-shot mode"`
	Format      string `long:"format" default:"json" choice:"json" choice:"table" description:"One-shot output format" validate:"oneof=json table"`

	// Logging
	LogLevel  string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)" validate:"oneof=trace debug info warn error"`
	LogPretty bool   `long:"log-pretty" env:"LOG_PRETTY" description:"Human readable console logs"`

	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
}

var globalCfg *Cfg

// Load parses the process arguments and environment. It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		FeedsDir:          raw.FeedsDir,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		RedisAddr:         raw.RedisAddr,
		ParseCacheTTL:     raw.ParseCacheTTL,
		UserAgent:         raw.UserAgent,
		FetchTimeout:      raw.FetchTimeout,
		FetchRetries:      raw.FetchRetries,
		URL:               raw.URL,
		File:              raw.File,
		OptionsFile:       raw.OptionsFile,
		Format:            raw.Format,
		LogLevel:          raw.LogLevel,
		LogPretty:         raw.LogPretty,
		Timezone:          raw.Timezone,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

func (c *Cfg) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *Cfg) ParseCacheTTLDuration() time.Duration {
	return time.Duration(c.ParseCacheTTL) * time.Second
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
