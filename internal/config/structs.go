package config

import (
	"time"

	"github.com/settings-admin/settings-admin/internal/logger"
)

// Supported cache drivers.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CacheMySQL    = "mysql"
	CachePostgres = "postgres"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	CookieName string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Cache     Cache
	Settings  Settings
	Log       logger.Log
	Title     string
	Webserver Webserver

	// Params is the process-wide parameter map merged underneath the stored
	// settings. Keys are lower-cased by the config loader.
	Params map[string]any
}

// Cache configures the settings cache collaborator.
type Cache struct {
	Driver string        // memory, redis, mysql or postgres
	Key    string        // cache key of the merged settings payload
	TTL    time.Duration // lifetime of the cached payload
	Table  string        // table used by the mysql and postgres drivers
	Redis  Redis
}

// Redis connection settings for the redis cache driver.
type Redis struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Settings locates the setting definitions.
type Settings struct {
	// DefinitionsFile is a .toml, .yaml or .json file. Relative paths are
	// resolved against the config directory.
	DefinitionsFile string
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown in seconds
	URL            string  // base url for the webserver
	Session        Session // session settings
}
