package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vitoramaral10/craft-guard/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Gerencia o arquivo de configuração",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [caminho]",
		Short: "Grava a configuração padrão",
		Long:  "Grava a configuração padrão no caminho informado (ou em ~/.config/craft-guard/config.yaml) sem sobrescrever um arquivo existente.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.ConfigDir(), "config.yaml")
			if len(args) == 1 {
				path = args[0]
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuração padrão salva em: %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Mostra a configuração efetiva",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "notify-players: %t\n", cfg.NotifyPlayers)
			fmt.Fprintf(out, "notification-message: %q\n", cfg.NotificationMessage)
			fmt.Fprintf(out, "cache-max-entries: %d\n", cfg.CacheMaxEntries)
			fmt.Fprintf(out, "cache-ttl: %s\n", cfg.CacheTTL)
			fmt.Fprintf(out, "async-workers: %d\n", cfg.AsyncWorkers)
			fmt.Fprintf(out, "log-level: %s\n", cfg.LogLevel)
			return nil
		},
	})

	return cmd
}
