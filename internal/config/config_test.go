package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.NotifyPlayers)
	assert.Equal(t, DefaultNotificationMessage, cfg.NotificationMessage)
	assert.Equal(t, 1000, cfg.CacheMaxEntries)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	path := writeFile(t, `
notify-players: false
notification-message: "&4Proibido"
cache-max-entries: 50
cache-ttl: 30s
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.False(t, cfg.NotifyPlayers)
	assert.Equal(t, "&4Proibido", cfg.NotificationMessage)
	assert.Equal(t, "§4Proibido", cfg.Message())
	assert.Equal(t, 50, cfg.CacheMaxEntries)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	// Não informado: mantém o padrão
	assert.Equal(t, 4, cfg.AsyncWorkers)
}

func TestLoad_DefaultsWhenKeysMissing(t *testing.T) {
	path := writeFile(t, "log-level: debug\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.True(t, cfg.NotifyPlayers)
	assert.Equal(t, DefaultNotificationMessage, cfg.NotificationMessage)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitEmptyMessage(t *testing.T) {
	path := writeFile(t, "notification-message: \"\"\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.NotificationMessage)
	assert.Equal(t, "", cfg.Message())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CRAFTGUARD_NOTIFY_PLAYERS", "false")
	t.Setenv("CRAFTGUARD_CACHE_TTL", "1m")
	path := writeFile(t, "notify-players: true\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.False(t, cfg.NotifyPlayers)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "cache-max-entries: 0\n")

	_, err := Load(viper.New(), path)
	assert.ErrorContains(t, err, "cache-max-entries")
}

func TestMessage(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "§cVocê não pode usar itens com nomes coloridos em receitas de crafting!", cfg.Message())

	cfg.NotificationMessage = "   "
	assert.Equal(t, "", cfg.Message())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// Não sobrescreve
	assert.Error(t, WriteDefault(path))
}
