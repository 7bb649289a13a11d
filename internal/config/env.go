package config

import (
	"strconv"
	"strings"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Port = port
		}
	}
	str("APP_ENV", &cfg.Env)
	str("DATABASE_DRIVER", &cfg.Database.Driver)
	if v, ok := lookup("DATABASE_URL"); ok && strings.TrimSpace(v) != "" {
		cfg.Database.Driver, cfg.Database.DSN = splitDatabaseURL(strings.TrimSpace(v), cfg.Database.Driver)
	}
	str("REDIS_URL", &cfg.RedisURL)
	str("SECRET_KEY", &cfg.SecretKey)
	if v, ok := lookup("BIRTHDAY_PASS"); ok {
		cfg.BirthdayPass = v
	}
	if v, ok := lookup("PORTFOLIO_MODE"); ok {
		cfg.PortfolioMode = parseBool(v)
	}
	str("SLACK_WEBHOOK_URL", &cfg.SlackWebhookURL)
	str("BARK_KEY", &cfg.Bark.Key)
	str("BARK_SERVER", &cfg.Bark.ServerURL)
	str("YOUTUBE_ID", &cfg.YoutubeID)
	str("BIRTHDAY_USERNAME", &cfg.BirthdayUsername)
}

// splitDatabaseURL accepts "sqlite://<path>", "mysql://<go-sql-driver dsn>" or a bare DSN
// for the current driver.
func splitDatabaseURL(raw string, currentDriver string) (string, string) {
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(raw, "sqlite://")
	case strings.HasPrefix(raw, "mysql://"):
		return DriverMySQL, strings.TrimPrefix(raw, "mysql://")
	default:
		return currentDriver, raw
	}
}

// parseBool treats "1", "true", "yes" and "on" as true.
func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
