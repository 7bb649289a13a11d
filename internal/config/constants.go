package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 5000
	defaultEnv        = "development"

	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	defaultDriver           = DriverSQLite
	defaultSQLiteDSN        = "app.db"
	defaultYoutubeID        = "YG5qy6baxCA"
	defaultBirthdayUsername = "birthday-user"
	defaultCookieName       = "hbd_session"
	defaultSessionTTLHours  = 24 * 14
	defaultBarkServer       = "https://api.day.app"
)
