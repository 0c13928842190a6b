package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string // appended to the DSN (mysql query string, postgres key=value pairs)
	Host       string
	Port       int
	User       string
	Password   string
	Name       string // database name, or file path for sqlite
	GormEngine string // mysql, postgres or sqlite
	LogLevel   string // gorm logger level: silent, error, warn, info
}
