package cfg

import "time"

const (
	ModeReport = "report"
	ModeSeed   = "seed"

	SourceFeed  = "feed"
	SourceLists = "lists"

	OutputClipboard = "clipboard"
	OutputStdout    = "stdout"

	StoreNone   = "none"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Cfg struct {
	// Run configuration
	Username        string
	Game            string
	Mode            string
	Source          string
	DataFile        string
	AdjustmentsFile string
	Output          string

	// Cache store configuration
	Store         string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Catalog API configuration
	XMLAPI2URL  string
	XMLAPIURL   string
	JSONAPIURL  string
	ThreadID    string
	UserAgent   string
	HTTPTimeout time.Duration
	RateLimit   float64
	Concurrency int

	// Application metadata
	Debug   bool
	Version string
}
