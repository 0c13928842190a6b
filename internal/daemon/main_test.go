package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settings-admin/settings-admin/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	etc, err := filepath.Abs("../../etc")
	require.NoError(t, err)

	cfg, err := config.ReadConfig(etc)
	require.NoError(t, err)

	cfg.DB.Name = filepath.Join(t.TempDir(), "settings.db")
	cfg.DB.Extras = ""
	cfg.DB.LogLevel = "silent"

	return cfg
}

func TestLogLevelOptions(t *testing.T) {
	options, err := LogLevelOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 7)

	assert.Equal(t, "trace", options[0].Value)
	assert.Equal(t, "TRACE", options[0].Label)
	assert.Equal(t, "panic", options[6].Value)
}

func TestNewProviders(t *testing.T) {
	providers := NewProviders()

	assert.True(t, providers.Has("log_levels"))
	assert.Equal(t, []string{"log_levels"}, providers.Names())
}

func TestNewSettings(t *testing.T) {
	cfg := testConfig(t)

	svc, c, err := NewSettings(context.Background(), &cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, config.CacheMemory, c.Name())

	store, err := svc.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Settings Demo", store.Get("site_name"))
	assert.False(t, store.IsDefault("site_name"))
}

func TestNewSettingsErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.Settings.DefinitionsFile = filepath.Join(t.TempDir(), "missing.toml")

	_, _, err := NewSettings(context.Background(), &cfg)
	require.Error(t, err)

	cfg = testConfig(t)
	cfg.Cache.Driver = config.CacheMySQL

	_, _, err = NewSettings(context.Background(), &cfg)
	require.Error(t, err)
}

func TestSessionStorage(t *testing.T) {
	cfg := testConfig(t)

	assert.Nil(t, sessionStorage(&cfg))
}
