package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type FetcherConfig struct {
	BaseURL     string        `yaml:"baseURL" validate:"required|fullUrl"`
	UserAgent   string        `yaml:"userAgent"`
	Players     []string      `yaml:"players"`
	RawDir      string        `yaml:"rawDir" validate:"required|unixPath"`
	Delay       time.Duration `yaml:"delay"`
	StartYear   int           `yaml:"startYear"`
	EndYear     int           `yaml:"endYear"`
	CompressRaw bool          `yaml:"compressRaw"`
}

type ProcessorConfig struct {
	RawDir       string `yaml:"rawDir" validate:"required|unixPath"`
	ProcessedDir string `yaml:"processedDir" validate:"required|unixPath"`
	OutputFile   string `yaml:"outputFile" validate:"required"`
}

type PerspectiveConfig struct {
	Subjects   []string `yaml:"subjects"`
	TopPlayers int      `yaml:"topPlayers" validate:"uint"`
	OutputFile string   `yaml:"outputFile" validate:"required"`
}

type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Fetcher     FetcherConfig     `yaml:"fetcher"`
	Processor   ProcessorConfig   `yaml:"processor"`
	Perspective PerspectiveConfig `yaml:"perspective"`
	Refresh     RefreshConfig     `yaml:"refresh"`
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
