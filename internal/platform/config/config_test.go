package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "heroes-marathon-bot/internal/platform/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "BOT_TOKEN", "RESULT_SINK", "DATABASE_URL", "SQLITE_PATH", "CSV_PATH",
		"SESSION_BACKEND", "REDIS_URL", "SESSION_TTL", "MIN_NAME_LENGTH", "START_RETRY_DELAY",
		"WORKERS", "POLL_TIMEOUT", "BOT_DEBUG", "HTTP_ADDR", "LOG_LEVEL", "LOG_FILE",
		"WEBSITE_URL_UK", "WEBSITE_URL_EN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresBotToken(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	require.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, SinkCSV, cfg.Sink)
	require.Equal(t, SessionsMemory, cfg.SessionBackend)
	require.Equal(t, 2, cfg.MinNameLength)
	require.Equal(t, time.Duration(0), cfg.StartRetryDelay)
	require.Equal(t, "marathon_results.csv", cfg.CSVPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RESULT_SINK", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/marathon")
	t.Setenv("START_RETRY_DELAY", "30s")
	t.Setenv("MIN_NAME_LENGTH", "0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, SinkPostgres, cfg.Sink)
	require.Equal(t, 30*time.Second, cfg.StartRetryDelay)
	require.Equal(t, 0, cfg.MinNameLength)
}

func TestLoadPostgresNeedsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("RESULT_SINK", "postgres")

	_, err := Load()
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("WORKERS", "many")

	_, err := Load()
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestLoadYAMLFileUnderEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bot.yaml")
	content := []byte(`
bot_token: "from-file"
result_sink: sqlite
sqlite_path: /tmp/results.db
start_retry_delay: 30s
session_backend: redis
redis_url: redis://localhost:6379/0
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("BOT_TOKEN", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.BotToken)
	require.Equal(t, SinkSqlite, cfg.Sink)
	require.Equal(t, "/tmp/results.db", cfg.SqlitePath)
	require.Equal(t, 30*time.Second, cfg.StartRetryDelay)
	require.Equal(t, SessionsRedis, cfg.SessionBackend)
}
