package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Run configuration
	Username        string `short:"u" long:"username" env:"BGG_USERNAME" description:"BGG username to find entries for"`
	Game            string `short:"g" long:"game" env:"BGG_GAME" description:"BGG ID or URL of the game to find entries for"`
	Mode            string `long:"mode" env:"MODE" default:"report" choice:"report" choice:"seed" description:"Run mode"`
	Source          string `long:"source" env:"SOURCE" default:"feed" choice:"feed" choice:"lists" description:"Where to collect play entries from"`
	DataFile        string `long:"data-file" env:"DATA_FILE" default:"data.json" description:"JSON file holding the username, list ids and thread watermark"`
	AdjustmentsFile string `long:"adjustments" env:"ADJUSTMENTS_FILE" default:"adjustments.yml" description:"YAML file with per-entry date overrides"`
	Output          string `long:"output" env:"OUTPUT" default:"clipboard" choice:"clipboard" choice:"stdout" description:"Where to write the forum code"`

	// Cache store configuration
	Store         string `long:"store" env:"STORE" default:"none" choice:"none" choice:"sqlite" choice:"redis" description:"Cache store backend"`
	SQLitePath    string `long:"sqlite-path" env:"SQLITE_PATH" default:"plays.db" description:"SQLite cache database file"`
	RedisAddr     string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address"`
	RedisPassword string `long:"redis-password" env:"REDIS_PASSWORD" description:"Redis password"`
	RedisDB       int    `long:"redis-db" env:"REDIS_DB" default:"0" description:"Redis database number"`
	RedisPrefix   string `long:"redis-prefix" env:"REDIS_PREFIX" default:"bggplays" description:"Prefix for all Redis keys"`

	// Catalog API configuration
	XMLAPI2URL  string  `long:"xmlapi2-url" env:"BGG_XMLAPI2_URL" default:"https://www.boardgamegeek.com/xmlapi2" description:"Base URL of the BGG XML API v2"`
	XMLAPIURL   string  `long:"xmlapi-url" env:"BGG_XMLAPI_URL" default:"https://www.boardgamegeek.com/xmlapi" description:"Base URL of the legacy BGG XML API"`
	JSONAPIURL  string  `long:"json-api-url" env:"BGG_JSON_API_URL" default:"https://api.geekdo.com/api" description:"Base URL of the geekdo JSON API"`
	ThreadID    string  `long:"thread-id" env:"BGG_THREAD_ID" default:"986303" description:"Forum thread announcing new community lists"`
	UserAgent   string  `long:"user-agent" env:"USER_AGENT" default:"bgg-plays/1.0" description:"User agent string for HTTP requests"`
	HTTPTimeout int     `long:"http-timeout" env:"HTTP_TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	RateLimit   float64 `long:"rate-limit" env:"RATE_LIMIT" default:"2" description:"Maximum catalog requests per second"`
	Concurrency int     `long:"concurrency" env:"CONCURRENCY" default:"4" description:"Maximum concurrent catalog lookups"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments (os.Args when nil) after loading .env.
func LoadArgs(args []string) (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Username:        raw.Username,
		Game:            raw.Game,
		Mode:            raw.Mode,
		Source:          raw.Source,
		DataFile:        raw.DataFile,
		AdjustmentsFile: raw.AdjustmentsFile,
		Output:          raw.Output,
		Store:           raw.Store,
		SQLitePath:      raw.SQLitePath,
		RedisAddr:       raw.RedisAddr,
		RedisPassword:   raw.RedisPassword,
		RedisDB:         raw.RedisDB,
		RedisPrefix:     raw.RedisPrefix,
		XMLAPI2URL:      raw.XMLAPI2URL,
		XMLAPIURL:       raw.XMLAPIURL,
		JSONAPIURL:      raw.JSONAPIURL,
		ThreadID:        raw.ThreadID,
		UserAgent:       raw.UserAgent,
		HTTPTimeout:     time.Duration(raw.HTTPTimeout) * time.Second,
		RateLimit:       raw.RateLimit,
		Concurrency:     raw.Concurrency,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.Mode == ModeReport && cfg.Game == "" {
		return fmt.Errorf("game is required in %s mode (use -g)", ModeReport)
	}

	if cfg.Mode == ModeSeed && cfg.Store == StoreNone {
		return fmt.Errorf("%s mode needs a cache store (use --store)", ModeSeed)
	}

	nonNegativeFields := map[string]float64{
		"http timeout": cfg.HTTPTimeout.Seconds(),
		"rate limit":   cfg.RateLimit,
		"redis db":     float64(cfg.RedisDB),
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	return nil
}
