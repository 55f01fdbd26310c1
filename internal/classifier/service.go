package classifier

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vitoramaral10/craft-guard/internal/host"
)

// Submitter aceita uma unidade de trabalho para rodar fora da chamada atual.
type Submitter interface {
	RunAsync(task func())
}

// Detector decide se um item tem nome colorido.
type Detector func(item *host.Item) bool

// Option configura um Service.
type Option func(*Service)

// WithDetector troca o detector padrão (HasColoredName).
func WithDetector(d Detector) Option {
	return func(s *Service) {
		if d != nil {
			s.detect = d
		}
	}
}

// Stats são contadores de uso do Service.
type Stats struct {
	Hits             int64
	Misses           int64
	Detections       int64
	PrewarmScheduled int64
	PrewarmSkipped   int64
}

// Service combina o cache de veredictos com o detector.
type Service struct {
	cache  *Cache
	async  Submitter
	detect Detector

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	hits             atomic.Int64
	misses           atomic.Int64
	detections       atomic.Int64
	prewarmScheduled atomic.Int64
	prewarmSkipped   atomic.Int64
}

// NewService cria o serviço de validação de itens.
func NewService(cache *Cache, async Submitter, opts ...Option) *Service {
	s := &Service{
		cache:    cache,
		async:    async,
		detect:   HasColoredName,
		inFlight: make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup retorna se o item tem nome colorido, usando o cache quando possível.
// Em caso de miss o detector roda na hora; nunca espera trabalho em segundo plano.
func (s *Service) Lookup(item *host.Item) bool {
	if !item.HasMeta() {
		return false
	}

	key := Fingerprint(item)
	if colored, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		return colored
	}
	s.misses.Add(1)

	colored := s.classify(item)
	s.cache.Set(key, colored)
	return colored
}

// Prewarm agenda a classificação do item em segundo plano para aquecer o cache.
// Não faz nada se o item já estiver em cache ou em processamento.
func (s *Service) Prewarm(item *host.Item) {
	if !item.HasMeta() {
		return
	}

	key := Fingerprint(item)
	if s.cache.Contains(key) {
		s.prewarmSkipped.Add(1)
		return
	}

	s.mu.Lock()
	if _, busy := s.inFlight[key]; busy {
		s.mu.Unlock()
		s.prewarmSkipped.Add(1)
		return
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	// O item pertence ao servidor; o worker usa uma cópia.
	detached := item.Clone()
	s.prewarmScheduled.Add(1)

	s.async.RunAsync(func() {
		defer s.release(key)
		s.cache.Set(key, s.classify(detached))
	})
}

// Clear esvazia o cache e o conjunto de itens em processamento.
func (s *Service) Clear() {
	s.cache.Purge()

	s.mu.Lock()
	clear(s.inFlight)
	s.mu.Unlock()

	slog.Debug("cache de validação limpo")
}

// InFlight retorna quantos fingerprints estão em processamento.
func (s *Service) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

// Stats retorna um retrato dos contadores.
func (s *Service) Stats() Stats {
	return Stats{
		Hits:             s.hits.Load(),
		Misses:           s.misses.Load(),
		Detections:       s.detections.Load(),
		PrewarmScheduled: s.prewarmScheduled.Load(),
		PrewarmSkipped:   s.prewarmSkipped.Load(),
	}
}

// Cache retorna o cache subjacente.
func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) classify(item *host.Item) bool {
	s.detections.Add(1)
	return s.detect(item)
}

func (s *Service) release(key uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}
