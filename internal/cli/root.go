package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vitoramaral10/craft-guard/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftguard",
		Short: "Bloqueia receitas vanilla com ingredientes de nome colorido",
		Long: `craft-guard impede que itens "customizados" do servidor sejam
falsificados por receitas vanilla.

Fluxo:
  1. O servidor dispara a preparação do crafting
  2. Receitas de outros plugins passam direto
  3. Cada ingrediente é verificado (com cache) em busca de nome colorido
  4. Se algum estiver colorido, o resultado é removido e o jogador avisado`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Flags globais
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "arquivo de configuração (padrão: ~/.config/craft-guard/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "nível de log (debug, info, warn, error)")

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Subcomandos
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() error {
	var err error
	cfg, err = config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return fmt.Errorf("erro na configuração: %w", err)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromString(cfg.LogLevel)})
	slog.SetDefault(slog.New(handler))

	return nil
}

// levelFromString converte o log-level da configuração; valores desconhecidos viram info.
func levelFromString(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
