// Package config handles input from etc/main.toml and the environment.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SETTINGS_ADMIN_WEBSERVER_PORT.
	EnvPrefix = "SETTINGS_ADMIN"

	// EnvConfigJSON holds a json document merged over the config file.
	EnvConfigJSON = EnvPrefix + "_CONFIG_JSON"

	// MainFile is the config file name inside the config directory.
	MainFile = "main.toml"

	defaultCacheKey     = "settings_handler_"
	defaultCacheTTL     = time.Hour
	defaultCacheTable   = "settings_cache"
	defaultShutDownTime = 5
)

// ReadConfig from config directory path.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(filepath.Join(path, MainFile))

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge "+EnvConfigJSON)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if c.Settings.DefinitionsFile != "" && !filepath.IsAbs(c.Settings.DefinitionsFile) {
		c.Settings.DefinitionsFile = filepath.Join(path, c.Settings.DefinitionsFile)
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Settings")
	v.SetDefault("webserver.shutDownTime", defaultShutDownTime)
	v.SetDefault("webserver.session.expiryTime", 24*time.Hour)
	v.SetDefault("webserver.session.cookieName", "settings_session")
	v.SetDefault("db.gormEngine", EngineSQLite)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("cache.driver", CacheMemory)
	v.SetDefault("cache.key", defaultCacheKey)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("cache.table", defaultCacheTable)
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "settings-admin")
	v.SetDefault("log.serviceName", "settings-admin")
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without and fills
// in the remaining defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnsupportedGormEngine, invalidErrMessage)
	}

	switch c.Cache.Driver {
	case "":
		c.Cache.Driver = CacheMemory
	case CacheMemory, CacheRedis, CacheMySQL, CachePostgres:
	default:
		return errors.Wrap(ErrUnsupportedCacheDriver, invalidErrMessage)
	}

	if c.Cache.Key == "" {
		c.Cache.Key = defaultCacheKey
	}

	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}

	if c.Settings.DefinitionsFile == "" {
		return errors.Wrap(ErrEmptyDefinitionsFile, invalidErrMessage)
	}

	return nil
}
