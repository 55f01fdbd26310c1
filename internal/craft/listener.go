package craft

import (
	"log/slog"
	"strings"

	"github.com/vitoramaral10/craft-guard/internal/host"
)

// Guard é o que o listener precisa do serviço de validação.
type Guard interface {
	Checker
	Prewarm(item *host.Item)
}

// Notification define o aviso enviado ao jogador quando um crafting é bloqueado.
type Notification struct {
	Enabled bool
	Message string
}

// Listener aplica as decisões de Decide no evento do servidor.
type Listener struct {
	guard     Guard
	scheduler host.Scheduler
	notice    Notification
}

// NewListener cria o listener de crafting.
func NewListener(guard Guard, scheduler host.Scheduler, notice Notification) *Listener {
	return &Listener{
		guard:     guard,
		scheduler: scheduler,
		notice:    notice,
	}
}

// OnPrepareItemCraft implementa host.Listener.
func (l *Listener) OnPrepareItemCraft(ev *host.PrepareCraftEvent) {
	d := Decide(ev, l.guard)

	for _, item := range d.Prewarm {
		l.guard.Prewarm(item)
	}

	switch d.Outcome {
	case AllowUnrecognized:
		slog.Info("receita sem chave encontrada, permitindo o crafting")
		return
	case Allow:
		return
	}

	ev.SetResult(nil)
	slog.Debug("crafting bloqueado", "reason", d.Reason, "slot", d.FlaggedSlot, "recipe", ev.Recipe.Key.String())

	l.notify(ev.Viewer)
}

func (l *Listener) notify(viewer host.Actor) {
	if !l.notice.Enabled {
		return
	}
	msg := l.notice.Message
	if strings.TrimSpace(msg) == "" || viewer == nil {
		return
	}

	// Mensagens para jogadores só na thread principal.
	l.scheduler.RunTask(func() {
		viewer.SendMessage(msg)
	})
}
