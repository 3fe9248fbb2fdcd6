package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/subosito/gotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"newshub_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"newshub_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"newshub" description:"Database name"`

	// Application configuration
	Mode string `long:"mode" env:"MODE" default:"serve" choice:"serve" choice:"fetch-articles" choice:"fetch-sources" description:"Run the HTTP API or one of the ingestion jobs"`
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Provider configuration
	NewsAPIKey      string `long:"newsapi-key" env:"NEWSAPI_API_KEY" description:"newsapi.org API key (required for ingestion jobs)"`
	Category        string `long:"category" env:"CATEGORY" description:"Single category to fetch; all categories when empty"`
	Country         string `long:"country" env:"COUNTRY" default:"us" description:"Country code for provider requests"`
	Language        string `long:"language" env:"LANGUAGE" description:"Language filter for source listings"`
	PageSize        int    `long:"page-size" env:"PAGE_SIZE" default:"50" description:"Number of articles per fetch request"`
	FetchInterval   int    `long:"fetch-interval" env:"FETCH_INTERVAL" default:"7200" description:"Seconds between article fetch cycles"`
	SourcesInterval int    `long:"sources-interval" env:"SOURCES_INTERVAL" default:"21600" description:"Seconds between source fetch cycles"`
	Once            bool   `long:"once" env:"ONCE" description:"Run a single fetch cycle and exit"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsHub/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// Optional .env file; OS environment wins when both are set.
	_ = gotenv.Load()

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
		DBHost:          raw.DBHost,
		DBPort:          raw.DBPort,
		DBUser:          raw.DBUser,
		DBPassword:      raw.DBPassword,
		DBName:          raw.DBName,
		Mode:            raw.Mode,
		Port:            raw.Port,
		NewsAPIKey:      raw.NewsAPIKey,
		Category:        raw.Category,
		Country:         raw.Country,
		Language:        raw.Language,
		PageSize:        raw.PageSize,
		FetchInterval:   raw.FetchInterval,
		SourcesInterval: raw.SourcesInterval,
		Once:            raw.Once,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
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
