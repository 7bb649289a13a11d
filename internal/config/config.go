package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port             int                   `yaml:"port"`
	Env              string                `yaml:"env"` // "development" | "production"
	Database         DatabaseRuntimeConfig `yaml:"database"`
	RedisURL         string                `yaml:"redis_url"`
	SecretKey        string                `yaml:"secret_key"`
	BirthdayPass     string                `yaml:"birthday_pass"`
	PortfolioMode    bool                  `yaml:"portfolio_mode"`
	SlackWebhookURL  string                `yaml:"slack_webhook_url"`
	Bark             BarkConfig            `yaml:"bark"`
	YoutubeID        string                `yaml:"youtube_id"`
	BirthdayUsername string                `yaml:"birthday_username"`
	AllowedOrigins   []string              `yaml:"allowed_origins"`
	Paths            RuntimePathsConfig    `yaml:"paths"`
	Session          SessionConfig         `yaml:"session"`
}

type DatabaseRuntimeConfig struct {
	Driver string `yaml:"driver"` // "sqlite" | "mysql"
	DSN    string `yaml:"dsn"`
}

type BarkConfig struct {
	Key       string `yaml:"key"`
	ServerURL string `yaml:"server_url"`
}

type RuntimePathsConfig struct {
	Logs         string `yaml:"logs"`
	Static       string `yaml:"static"`
	OriginPhotos string `yaml:"origin_photos"`
	Photos       string `yaml:"photos"`
	Letter       string `yaml:"letter"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	TTLHours   int    `yaml:"ttl_hours"`
	Secure     bool   `yaml:"secure"`
}

// Load reads the YAML file at configPath, then applies environment overrides.
// A missing file at the default path is not an error.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.LookupEnv)
	normalizeAppConfig(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database.driver %q, expected sqlite or mysql", cfg.Database.Driver)
	}
	if cfg.Session.TTLHours < 1 {
		return nil, fmt.Errorf("invalid session.ttl_hours %d, expected >= 1", cfg.Session.TTLHours)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver: defaultDriver,
			DSN:    defaultSQLiteDSN,
		},
		Bark:             BarkConfig{ServerURL: defaultBarkServer},
		YoutubeID:        defaultYoutubeID,
		BirthdayUsername: defaultBirthdayUsername,
		Session: SessionConfig{
			CookieName: defaultCookieName,
			TTLHours:   defaultSessionTTLHours,
		},
	}
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// WritesEnabled reports whether owner mutations are allowed.
func (c *AppConfig) WritesEnabled() bool {
	return !c.PortfolioMode
}

func (c *AppConfig) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", logsSubdir)
	}
	return ResolveRuntimePath(c.Paths.Logs, logsSubdir)
}

func (c *AppConfig) StaticDir() string {
	return ResolveRuntimePath(c.Paths.Static, staticSubdir)
}

// OriginPhotoDir is the read-only seed directory for the gallery.
func (c *AppConfig) OriginPhotoDir() string {
	return ResolveRuntimePath(c.Paths.OriginPhotos, originPhotosSubdir)
}

// PhotoDir is the mutable working gallery directory.
func (c *AppConfig) PhotoDir() string {
	return ResolveRuntimePath(c.Paths.Photos, photosSubdir)
}

func (c *AppConfig) LetterDir() string {
	return ResolveRuntimePath(c.Paths.Letter, letterSubdir)
}
