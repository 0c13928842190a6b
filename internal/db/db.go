// Package db opens the gorm connection for the configured engine and
// migrates the settings schema.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/db/dsn"
	"github.com/settings-admin/settings-admin/internal/db/models"
	"github.com/settings-admin/settings-admin/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ErrUnsupportedEngine is returned for an engine without a gorm dialector.
var ErrUnsupportedEngine = errors.New("unsupported gorm engine")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedEngine, cfg.DB.GormEngine)
	}
}

// Open connects to the database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewLogger(cfg.DB.LogLevel)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the system_settings table.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&models.SystemSetting{}), "failed to migrate database")
}

// NewLogger routes gorm's logger through zerolog.
func NewLogger(level string) gormlogger.Interface {
	return gormlogger.New(
		stdlogger.NewComponent("gorm", zerolog.DebugLevel),
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  parseLevel(level),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func parseLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
