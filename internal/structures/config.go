package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Dir          string        `yaml:"dir" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AnalyticsConfig struct {
	RetentionDays int           `yaml:"retentionDays"`
	PruneInterval time.Duration `yaml:"pruneInterval"`
}

type SessionConfig struct {
	Secret string        `yaml:"secret" validate:"required|minLen:16"`
	TTL    time.Duration `yaml:"ttl" validate:"required|min:1"`
}

type AdminConfig struct {
	User   string `yaml:"user" validate:"required"`
	Secret string `yaml:"secret" validate:"required|minLen:8"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Analytics   AnalyticsConfig `yaml:"analytics"`
	Session     SessionConfig   `yaml:"session"`
	Admin       AdminConfig     `yaml:"admin"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
