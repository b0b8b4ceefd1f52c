package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.UI.PageSize)
	assert.Equal(t, "2006-01-02", cfg.UI.DateFormat)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "invdash", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.Endpoint)
	assert.Equal(t, "invdash.db", filepath.Base(cfg.Database.Path))
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/inv.db"

[ui]
page_size = 20
`), 0o644))
	t.Setenv("INVDASH_UI_PAGE_SIZE", "25")
	t.Setenv("INVDASH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/inv.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.UI.PageSize, "env wins over file")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("[http]\naddr = \":9999\"\n"), 0o644))
	t.Setenv(ConfigEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
}

func TestLoad_RejectsBadPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\npage_size = 0\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\npage_size = "), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Config{
		Database:  DatabaseConfig{Path: "/data/inv.db"},
		Log:       LogConfig{Path: "/data/inv.log", Level: "warn"},
		UI:        UIConfig{PageSize: 10, DateFormat: "02 Jan"},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Telemetry: TelemetryConfig{Endpoint: "localhost:4318", ServiceName: "inv"},
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
