package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vitoramaral10/craft-guard/internal/chat"
)

// DefaultNotificationMessage é o aviso padrão, com códigos '&'.
const DefaultNotificationMessage = "&cVocê não pode usar itens com nomes coloridos em receitas de crafting!"

type Config struct {
	NotifyPlayers       bool          `mapstructure:"notify-players"`
	NotificationMessage string        `mapstructure:"notification-message"`
	CacheMaxEntries     int           `mapstructure:"cache-max-entries"`
	CacheTTL            time.Duration `mapstructure:"cache-ttl"`
	AsyncWorkers        int           `mapstructure:"async-workers"`
	LogLevel            string        `mapstructure:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		NotifyPlayers:       true,
		NotificationMessage: DefaultNotificationMessage,
		CacheMaxEntries:     1000,
		CacheTTL:            5 * time.Minute,
		AsyncWorkers:        4,
		LogLevel:            "info",
	}
}

// ConfigDir retorna o diretório de configuração.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "craft-guard")
}

// Message retorna o aviso pronto para exibição, com os códigos '&' traduzidos.
// Uma mensagem vazia ou em branco desativa o aviso.
func (c *Config) Message() string {
	if strings.TrimSpace(c.NotificationMessage) == "" {
		return ""
	}
	return chat.TranslateAlternateColorCodes(chat.AltColorChar, c.NotificationMessage)
}

// Validate verifica os limites numéricos.
func (c *Config) Validate() error {
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache-max-entries deve ser positivo: %d", c.CacheMaxEntries)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache-ttl deve ser positivo: %s", c.CacheTTL)
	}
	if c.AsyncWorkers <= 0 {
		return fmt.Errorf("async-workers deve ser positivo: %d", c.AsyncWorkers)
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("notify-players", cfg.NotifyPlayers)
	v.SetDefault("notification-message", cfg.NotificationMessage)
	v.SetDefault("cache-max-entries", cfg.CacheMaxEntries)
	v.SetDefault("cache-ttl", cfg.CacheTTL.String())
	v.SetDefault("async-workers", cfg.AsyncWorkers)
	v.SetDefault("log-level", cfg.LogLevel)
}

// Load lê a configuração do arquivo, das variáveis CRAFTGUARD_* e das flags
// já associadas ao viper informado.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	cfg := DefaultConfig()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CRAFTGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("erro ao decodificar config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config inválida: %w", err)
	}

	return cfg, nil
}

// WriteDefault grava a configuração padrão em path, sem sobrescrever um arquivo existente.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório de config: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigType("yaml")

	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("erro ao gravar config padrão: %w", err)
	}
	return nil
}
