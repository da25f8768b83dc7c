package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setEnvs(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestNewConfig(t *testing.T) {
	logDir := t.TempDir()

	// Test with missing token
	setEnvs(t, map[string]string{
		"CBL_BOT_TOKEN": "",
		"DISCORD_TOKEN": "",
		"CBL_LOG_DIR":   logDir,
	})
	_, err := NewConfig()
	require.Error(t, err)

	// Test with valid vars
	setEnvs(t, map[string]string{
		"DISCORD_TOKEN":        "test_token",
		"DISCORD_CLIENT_ID":    "1234",
		"CBL_GRAPHQL_ENDPOINT": "http://localhost:9999/graphql",
	})
	cfg, err := NewConfig()
	require.NoError(t, err)

	require.Equal(t, "test_token", cfg.GetBotToken())
	require.Equal(t, "1234", cfg.GetClientID())
	require.Equal(t, "http://localhost:9999/graphql", cfg.GetGraphQLEndpoint())
	require.Equal(t, DefaultBansPerPage, cfg.GetBansPerPage())
	require.Equal(t, logDir, cfg.GetLogDir())
}

func TestNewConfig_PrefixedEnvWins(t *testing.T) {
	setEnvs(t, map[string]string{
		"CBL_BOT_TOKEN": "prefixed",
		"DISCORD_TOKEN": "plain",
		"CBL_LOG_DIR":   t.TempDir(),
	})

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, "prefixed", cfg.GetBotToken())
}

func TestMockConfigDefaults(t *testing.T) {
	cfg := NewMockConfig(map[string]interface{}{"bans_per_page": 0})

	require.Equal(t, DefaultGraphQLEndpoint, cfg.GetGraphQLEndpoint())
	require.Equal(t, DefaultBansPerPage, cfg.GetBansPerPage())
	require.Empty(t, cfg.GetLogChannelID())

	cfg = NewMockConfig(map[string]interface{}{"bans_per_page": 5, "guild_id": "g1"})
	require.Equal(t, 5, cfg.GetBansPerPage())
	require.Equal(t, "g1", cfg.GetGuildID())
}

func TestRotateAndPruneLogs(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, logFilePrefix+"20000101_000000.log")
	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(unrelated, []byte("keep me"), 0644))

	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(unrelated, old, old))

	cfg := NewMockConfig(map[string]interface{}{"log_dir": dir})
	require.NoError(t, cfg.RotateAndPruneLogs())

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err), "stale log file should be pruned")

	_, err = os.Stat(unrelated)
	require.NoError(t, err, "files without the log prefix are left alone")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "one fresh log file plus the unrelated file")
}

func TestSetLogLevel(t *testing.T) {
	cfg := NewMockConfig(nil)
	cfg.SetLogLevel("warn")
	require.Equal(t, "warn", cfg.GetString("log_level"))
	require.Equal(t, "warn", cfg.Logger.GetLevel().String())
}
