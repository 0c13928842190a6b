package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrUnsupportedGormEngine is returned for an unknown db.gormEngine.
	ErrUnsupportedGormEngine = errors.New("config db.gormEngine must be mysql, postgres or sqlite")

	// ErrUnsupportedCacheDriver is returned for an unknown cache.driver.
	ErrUnsupportedCacheDriver = errors.New("config cache.driver must be memory, redis, mysql or postgres")

	// ErrEmptyDefinitionsFile error if config settings.definitionsFile is empty.
	ErrEmptyDefinitionsFile = errors.New("config settings.definitionsFile can not be empty")
)
