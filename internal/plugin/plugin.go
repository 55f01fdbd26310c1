// Package plugin liga configuração, cache e listener ao ciclo de vida do servidor.
package plugin

import (
	"fmt"
	"log/slog"

	"github.com/vitoramaral10/craft-guard/internal/classifier"
	"github.com/vitoramaral10/craft-guard/internal/config"
	"github.com/vitoramaral10/craft-guard/internal/craft"
	"github.com/vitoramaral10/craft-guard/internal/host"
)

// Host é o que o plugin usa do servidor.
type Host interface {
	host.Scheduler
	RegisterListener(l host.Listener)
}

// Loader carrega a configuração na inicialização.
type Loader func() (*config.Config, error)

// Plugin é o ponto de entrada do craft-guard.
type Plugin struct {
	host Host
	load Loader

	cfg      *config.Config
	cache    *classifier.Cache
	service  *classifier.Service
	listener *craft.Listener
}

// New cria o plugin sem iniciá-lo.
func New(h Host, load Loader) *Plugin {
	return &Plugin{host: h, load: load}
}

// Start carrega a configuração, monta o cache e registra o listener.
func (p *Plugin) Start() error {
	cfg, err := p.load()
	if err != nil {
		return fmt.Errorf("erro ao carregar config: %w", err)
	}

	p.service = classifier.NewService(p.cacheFor(cfg), p.host)
	p.listener = craft.NewListener(p.service, p.host, craft.Notification{
		Enabled: cfg.NotifyPlayers,
		Message: cfg.Message(),
	})
	p.cfg = cfg

	p.host.RegisterListener(p.listener)

	slog.Info("craft-guard habilitado",
		"notify", cfg.NotifyPlayers,
		"cache_max_entries", cfg.CacheMaxEntries,
		"cache_ttl", cfg.CacheTTL)
	return nil
}

// cacheFor reaproveita o cache entre reinícios. Só um novo TTL exige outro cache.
func (p *Plugin) cacheFor(cfg *config.Config) *classifier.Cache {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = classifier.DefaultTTL
	}
	if p.cache != nil && p.cache.TTL() == ttl {
		p.cache.Resize(cfg.CacheMaxEntries)
		return p.cache
	}
	p.cache = classifier.NewCache(cfg.CacheMaxEntries, ttl)
	return p.cache
}

// Stop limpa o cache e o controle de itens em processamento.
func (p *Plugin) Stop() {
	if p.service != nil {
		p.service.Clear()
	}
	slog.Info("craft-guard desabilitado")
}

// Service retorna o serviço de validação, ou nil antes de Start.
func (p *Plugin) Service() *classifier.Service {
	return p.service
}

// Config retorna a configuração carregada, ou nil antes de Start.
func (p *Plugin) Config() *config.Config {
	return p.cfg
}
