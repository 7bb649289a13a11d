package config

import "strings"

func normalizeAppConfig(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDriver
	}
	cfg.Database.DSN = strings.TrimSpace(cfg.Database.DSN)
	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.DSN = defaultSQLiteDSN
	}
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.SlackWebhookURL = strings.TrimSpace(cfg.SlackWebhookURL)
	cfg.Bark.Key = strings.TrimSpace(cfg.Bark.Key)
	cfg.Bark.ServerURL = strings.TrimRight(strings.TrimSpace(cfg.Bark.ServerURL), "/")
	if cfg.Bark.ServerURL == "" {
		cfg.Bark.ServerURL = defaultBarkServer
	}
	if strings.TrimSpace(cfg.YoutubeID) == "" {
		cfg.YoutubeID = defaultYoutubeID
	}
	if strings.TrimSpace(cfg.BirthdayUsername) == "" {
		cfg.BirthdayUsername = defaultBirthdayUsername
	}
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		cfg.Session.CookieName = defaultCookieName
	}
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
}

func normalizeRuntimePaths(paths RuntimePathsConfig) RuntimePathsConfig {
	paths.Logs = strings.TrimSpace(paths.Logs)
	paths.Static = strings.TrimSpace(paths.Static)
	paths.OriginPhotos = strings.TrimSpace(paths.OriginPhotos)
	paths.Photos = strings.TrimSpace(paths.Photos)
	paths.Letter = strings.TrimSpace(paths.Letter)
	return paths
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}
