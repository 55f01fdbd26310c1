package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vitoramaral10/craft-guard/internal/chat"
	"github.com/vitoramaral10/craft-guard/internal/config"
	"github.com/vitoramaral10/craft-guard/internal/craft"
	"github.com/vitoramaral10/craft-guard/internal/host"
	"github.com/vitoramaral10/craft-guard/internal/plugin"
	"github.com/vitoramaral10/craft-guard/internal/replay"
	"github.com/vitoramaral10/craft-guard/internal/server"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <cenarios.yaml>",
		Short: "Reproduz cenários de crafting no servidor em processo",
		Long: `Carrega cenários de crafting em YAML, inicia o plugin sobre um servidor
em memória e dispara cada evento, mostrando se o resultado foi bloqueado e
quais mensagens o jogador recebeu.`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().Int("repeat", 1, "quantas vezes reproduzir cada cenário (exercita o cache)")
	cmd.Flags().Bool("quiet", false, "mostra apenas o resumo")

	return cmd
}

type replayResult struct {
	scenario replay.Scenario
	outcome  craft.Outcome
	messages []string
	err      error
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\n⚠️  Interrupção recebida, encerrando de forma segura...")
			cancel()
		case <-ctx.Done():
		}
	}()

	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		repeat = 1
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	scenarios, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Nenhum cenário para reproduzir!")
		return nil
	}

	srv := server.New(server.Options{AsyncWorkers: cfg.AsyncWorkers})
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("servidor não encerrou a tempo", "error", err)
		}
	}()

	p := plugin.New(srv, func() (*config.Config, error) { return cfg, nil })
	if err := p.Start(); err != nil {
		return err
	}
	defer p.Stop()

	bar := progressbar.NewOptions(len(scenarios)*repeat,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("   Cenários"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	var results []replayResult
	for round := 0; round < repeat; round++ {
		for _, s := range scenarios {
			if ctx.Err() != nil {
				return fmt.Errorf("operação cancelada")
			}
			r := runScenario(ctx, srv, s)
			if round == 0 {
				results = append(results, r)
			}
			bar.Add(1)
		}
	}
	srv.WaitAsync()
	fmt.Fprintln(os.Stderr)

	failed := printResults(cmd.OutOrStdout(), results, quiet)

	st := p.Service().Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "\n📊 Cache: %d acertos, %d falhas, %d detecções, %d prewarm agendados\n",
		st.Hits, st.Misses, st.Detections, st.PrewarmScheduled)

	if failed > 0 {
		return fmt.Errorf("%d cenário(s) com resultado diferente do esperado", failed)
	}
	return nil
}

func runScenario(ctx context.Context, srv *server.Server, s replay.Scenario) replayResult {
	r := replayResult{scenario: s}

	var player *server.Player
	var viewer host.Actor
	if s.Player != "" {
		player = server.NewPlayer(s.Player)
		viewer = player
	}

	ev, err := s.Event(viewer)
	if err != nil {
		r.err = err
		return r
	}
	before := ev.Result

	if err := srv.FirePrepareCraft(ctx, ev); err != nil {
		r.err = err
		return r
	}
	if err := srv.Flush(ctx); err != nil {
		r.err = err
		return r
	}

	switch {
	case before != nil && ev.Result == nil:
		r.outcome = craft.Suppress
	case ev.Recipe.Key == nil && before != nil:
		r.outcome = craft.AllowUnrecognized
	default:
		r.outcome = craft.Allow
	}
	if player != nil {
		r.messages = player.Messages()
	}
	return r
}

func printResults(w io.Writer, results []replayResult, quiet bool) int {
	failed := 0
	suppressed := 0

	for _, r := range results {
		mismatch := r.err == nil && r.scenario.Expect != "" && r.scenario.Expect != r.outcome.String()
		if r.err != nil || mismatch {
			failed++
		}
		if r.outcome == craft.Suppress {
			suppressed++
		}
		if quiet {
			continue
		}

		fmt.Fprintf(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
		fmt.Fprintf(w, "🧪 %s (%s)\n", r.scenario.Name, recipeLabel(r.scenario.Recipe))
		if r.err != nil {
			fmt.Fprintf(w, "   ❌ Erro: %v\n", r.err)
			continue
		}

		label := color.GreenString(r.outcome.String())
		if r.outcome == craft.Suppress {
			label = color.RedString(r.outcome.String())
		}
		fmt.Fprintf(w, "   Resultado: %s\n", label)
		if mismatch {
			fmt.Fprintf(w, "   ⚠️  Esperado: %s\n", r.scenario.Expect)
		}
		for _, msg := range r.messages {
			fmt.Fprintf(w, "   💬 %s: %s\n", r.scenario.Player, chat.ToANSI(msg))
		}
	}

	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "\n🎉 Reprodução concluída!\n")
	fmt.Fprintf(w, "   🚫 Bloqueados: %d\n", suppressed)
	fmt.Fprintf(w, "   ✅ Permitidos: %d\n", len(results)-suppressed)
	if failed > 0 {
		fmt.Fprintf(w, "   ❌ Divergentes: %d\n", failed)
	}
	return failed
}

func recipeLabel(recipe string) string {
	if strings.TrimSpace(recipe) == "" {
		return "receita sem chave"
	}
	return recipe
}
