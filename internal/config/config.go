package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the server configuration. Values come from an optional TOML file
// (CARDGEN_CONFIG) and are then overridden by environment variables.
type Config struct {
	Port               string        `toml:"port"`
	LogLevel           string        `toml:"log_level"`
	GenerationEndpoint string        `toml:"generation_endpoint"`
	GenerationTimeout  time.Duration `toml:"-"`
	DownloadTimeout    time.Duration `toml:"-"`
	SessionTTL         time.Duration `toml:"-"`
	StaticDir          string        `toml:"static_dir"`
	PublicBaseURL      string        `toml:"public_base_url"`

	// Durations are kept as strings in the file ("30s", "2m").
	GenerationTimeoutRaw string `toml:"generation_timeout"`
	DownloadTimeoutRaw   string `toml:"download_timeout"`
	SessionTTLRaw        string `toml:"session_ttl"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		GenerationTimeout: 60 * time.Second,
		DownloadTimeout:   10 * time.Second,
		SessionTTL:        time.Hour,
		StaticDir:         "static",
	}
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ImagesDir is where placeholder images live.
func (c Config) ImagesDir() string {
	return strings.TrimRight(c.StaticDir, "/") + "/images"
}

// ImagesBaseURL is the public URL prefix of ImagesDir.
func (c Config) ImagesBaseURL() string {
	base := c.PublicBaseURL
	if base == "" {
		base = "http://localhost" + c.Addr()
	}
	return strings.TrimRight(base, "/") + "/static/images"
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	return parseLogLevel(c.LogLevel)
}

// Load reads the optional config file and applies environment overrides.
func Load() (Config, error) {
	c := Defaults()

	if path := os.Getenv("CARDGEN_CONFIG"); path != "" {
		if err := c.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	c.Port = envOr("PORT", c.Port)
	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.GenerationEndpoint = envOr("GENERATION_ENDPOINT", c.GenerationEndpoint)
	c.StaticDir = envOr("STATIC_DIR", c.StaticDir)
	c.PublicBaseURL = envOr("PUBLIC_BASE_URL", c.PublicBaseURL)

	var err error
	if c.GenerationTimeout, err = durationEnv("GENERATION_TIMEOUT", c.GenerationTimeout); err != nil {
		return Config{}, err
	}
	if c.DownloadTimeout, err = durationEnv("DOWNLOAD_TIMEOUT", c.DownloadTimeout); err != nil {
		return Config{}, err
	}
	if c.SessionTTL, err = durationEnv("SESSION_TTL", c.SessionTTL); err != nil {
		return Config{}, err
	}
	if _, err := c.SlogLevel(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	if c.GenerationTimeoutRaw != "" {
		d, err := time.ParseDuration(c.GenerationTimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid generation_timeout %q: %w", c.GenerationTimeoutRaw, err)
		}
		c.GenerationTimeout = d
	}
	if c.DownloadTimeoutRaw != "" {
		d, err := time.ParseDuration(c.DownloadTimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid download_timeout %q: %w", c.DownloadTimeoutRaw, err)
		}
		c.DownloadTimeout = d
	}
	if c.SessionTTLRaw != "" {
		d, err := time.ParseDuration(c.SessionTTLRaw)
		if err != nil {
			return fmt.Errorf("invalid session_ttl %q: %w", c.SessionTTLRaw, err)
		}
		c.SessionTTL = d
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
