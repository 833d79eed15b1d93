package config

// Config is the .surveylex/config.yml schema.
type Config struct {
	Version int          `yaml:"version"`
	Survey  string       `yaml:"survey"`
	UI      UIConfig     `yaml:"ui"`
	Log     LogConfig    `yaml:"log"`
	Upload  UploadConfig `yaml:"upload"`
}

type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UploadConfig selects where responses are sent while the survey is taken.
type UploadConfig struct {
	Sink      string       `yaml:"sink"`
	Retries   int          `yaml:"retries"`
	BackoffMs int          `yaml:"backoff_ms"`
	DuckDB    DuckDBConfig `yaml:"duckdb"`
	Redis     RedisConfig  `yaml:"redis"`
	Mongo     MongoConfig  `yaml:"mongo"`
	HTTP      HTTPConfig   `yaml:"http"`
}

type DuckDBConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	KeyPrefix  string `yaml:"key_prefix"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type HTTPConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Sink names accepted by upload.sink.
const (
	SinkNone   = "none"
	SinkDuckDB = "duckdb"
	SinkRedis  = "redis"
	SinkMongo  = "mongo"
	SinkHTTP   = "http"
)

// UI modes accepted by ui.mode.
const (
	UIModeAuto  = "auto"
	UIModeLive  = "live"
	UIModePlain = "plain"
)
