package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/kinobot/internal/config"
	"github.com/vmunix/kinobot/internal/events"
	"github.com/vmunix/kinobot/internal/watchlist"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func isolateConfigSearch(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/etc/kinobot/config.toml"); err == nil {
		t.Skip("system config present")
	}
	t.Setenv("KINOBOT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadConfig_DefaultsWithToken(t *testing.T) {
	isolateConfigSearch(t)
	t.Setenv(config.TokenEnv, "tok")

	cfg, path, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "tok", cfg.Bot.Token)
	assert.Equal(t, "./list.json", cfg.Watchlist.Path)
}

func TestLoadConfig_DefaultsWithoutTokenFail(t *testing.T) {
	isolateConfigSearch(t)
	t.Setenv(config.TokenEnv, "")

	_, _, err := loadConfig("")
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "bot.token")
}

func TestLoadConfig_Discovered(t *testing.T) {
	isolateConfigSearch(t)
	t.Setenv(config.TokenEnv, "tok")
	require.NoError(t, config.WriteDefault("kinobot.toml"))

	cfg, path, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "./kinobot.toml", path)
	assert.Equal(t, "./data/events.db", cfg.Events.Path)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenEventLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")

	db, eventLog, err := openEventLog(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = eventLog.Append(events.NewEntryAdded(1, "alien", ""))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

// writeServerConfig writes a config with no event log for the given files.
func writeServerConfig(t *testing.T, dir, listPath, titlesPath string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "kinobot.toml")
	content := "[bot]\ntoken = \"tok\"\n\n[watchlist]\npath = \"" + listPath +
		"\"\n\n[titles]\npath = \"" + titlesPath + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func TestRunServer_CorruptWatchlist(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.json")
	require.NoError(t, os.WriteFile(listPath, []byte(`{"watchlist": [`), 0o644))
	cfgPath := writeServerConfig(t, dir, listPath, filepath.Join(dir, "movies.json"))

	err := runServer(cfgPath)
	require.ErrorIs(t, err, watchlist.ErrCorruptState)

	// The file is left for the operator to repair.
	data, readErr := os.ReadFile(listPath)
	require.NoError(t, readErr)
	assert.Equal(t, `{"watchlist": [`, string(data))
}

func TestRunServer_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeServerConfig(t, dir, filepath.Join(dir, "list.json"), filepath.Join(dir, "missing.json"))

	err := runServer(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}
