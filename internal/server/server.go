// Package server é um servidor de jogo mínimo, em processo, que oferece as
// portas de host.Scheduler e o despacho do evento de crafting. Serve à CLI e
// aos testes de ponta a ponta.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/vitoramaral10/craft-guard/internal/host"
)

var (
	// ErrStopped indica que o servidor já foi encerrado.
	ErrStopped = errors.New("servidor encerrado")

	errQueueFull = errors.New("fila da thread principal cheia")
)

// Options configura o servidor.
type Options struct {
	QueueSize    int
	AsyncWorkers int
	// SubmitTimeout limita as novas tentativas quando a fila principal está cheia.
	SubmitTimeout time.Duration
}

// Server simula a thread principal e os workers assíncronos do servidor de jogo.
type Server struct {
	tasks   chan func()
	done    chan struct{}
	stopped chan struct{}
	workers *errgroup.Group
	pending sync.WaitGroup
	timeout time.Duration

	mu        sync.RWMutex
	listeners []host.Listener
	closeOnce sync.Once

	// queueMu protege o envio para tasks, o excedente e o fechamento da fila.
	queueMu  sync.Mutex
	overflow []func()
	closed   bool
}

// New cria e inicia o servidor.
func New(opts Options) *Server {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.AsyncWorkers <= 0 {
		opts.AsyncWorkers = 4
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = 2 * time.Second
	}

	workers := &errgroup.Group{}
	workers.SetLimit(opts.AsyncWorkers)

	s := &Server{
		tasks:   make(chan func(), opts.QueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		workers: workers,
		timeout: opts.SubmitTimeout,
	}
	go s.loop()

	slog.Debug("servidor iniciado", "queue", opts.QueueSize, "workers", opts.AsyncWorkers)
	return s
}

// RegisterListener registra um listener de crafting.
func (s *Server) RegisterListener(l host.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// RunTask implementa host.Scheduler. Nunca bloqueia: com a fila cheia a tarefa
// vai para o excedente, executado pela thread principal logo após a tarefa
// atual. Só é descartada depois do encerramento.
func (s *Server) RunTask(task func()) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.closed {
		slog.Error("tarefa da thread principal descartada", "error", ErrStopped)
		return
	}
	if len(s.overflow) == 0 {
		select {
		case s.tasks <- task:
			return
		default:
		}
	}
	s.overflow = append(s.overflow, task)
}

// RunAsync implementa host.Scheduler. Nunca bloqueia quem chama: se todos os
// workers estiverem ocupados, a tarefa espera por um em outra goroutine.
func (s *Server) RunAsync(task func()) {
	s.pending.Add(1)
	wrapped := func() error {
		defer s.pending.Done()
		runSafely("async", task)
		return nil
	}
	if s.workers.TryGo(wrapped) {
		return
	}
	go s.workers.Go(wrapped)
}

// FirePrepareCraft despacha o evento na thread principal e espera todos os listeners.
func (s *Server) FirePrepareCraft(ctx context.Context, ev *host.PrepareCraftEvent) error {
	s.mu.RLock()
	listeners := append([]host.Listener(nil), s.listeners...)
	s.mu.RUnlock()

	handled := make(chan struct{})
	err := s.submit(func() {
		defer close(handled)
		for _, l := range listeners {
			runSafely("listener", func() { l.OnPrepareItemCraft(ev) })
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao despachar evento: %w", err)
	}

	select {
	case <-handled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Flush espera a thread principal executar tudo o que já estava na fila.
func (s *Server) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	if err := s.submit(func() { close(flushed) }); err != nil {
		return err
	}
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAsync espera os workers assíncronos terminarem.
func (s *Server) WaitAsync() {
	s.pending.Wait()
}

// Shutdown encerra a thread principal depois de esvaziar a fila e espera os workers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })

	finished := make(chan struct{})
	go func() {
		<-s.stopped
		s.WaitAsync()
		close(finished)
	}()

	select {
	case <-finished:
		slog.Debug("servidor encerrado")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("erro ao encerrar servidor: %w", ctx.Err())
	}
}

func (s *Server) stopping() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// submit enfileira com espera limitada. É para quem está fora da thread
// principal; dentro dela use RunTask.
func (s *Server) submit(task func()) error {
	operation := func() error {
		s.queueMu.Lock()
		defer s.queueMu.Unlock()

		if s.closed || s.stopping() {
			return backoff.Permanent(ErrStopped)
		}
		select {
		case s.tasks <- task:
			return nil
		default:
			return errQueueFull
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	b.MaxElapsedTime = s.timeout

	return backoff.Retry(operation, b)
}

func (s *Server) loop() {
	defer close(s.stopped)

	for {
		select {
		case task := <-s.tasks:
			runSafely("main", task)
			s.runOverflow()
		case <-s.done:
			s.drain()
			return
		}
	}
}

// runOverflow executa o excedente acumulado, incluindo o que for agendado
// enquanto ele roda.
func (s *Server) runOverflow() {
	for {
		s.queueMu.Lock()
		pending := s.overflow
		s.overflow = nil
		s.queueMu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, task := range pending {
			runSafely("main", task)
		}
	}
}

// drain esvazia o que já foi aceito e fecha a fila para novas tarefas.
func (s *Server) drain() {
	for {
		select {
		case task := <-s.tasks:
			runSafely("main", task)
			s.runOverflow()
			continue
		default:
		}

		s.queueMu.Lock()
		if len(s.tasks) == 0 && len(s.overflow) == 0 {
			s.closed = true
			s.queueMu.Unlock()
			return
		}
		s.queueMu.Unlock()
		s.runOverflow()
	}
}

func runSafely(where string, task func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pânico em tarefa do servidor", "context", where, "panic", r)
		}
	}()
	task()
}
