package classifier

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxEntries = 1000
	DefaultTTL        = 5 * time.Minute
)

// Cache armazena veredictos por fingerprint para evitar recomputações.
// O tamanho é limitado e cada entrada expira um tempo fixo após ser escrita;
// leituras não renovam o prazo.
//
// Cada Cache mantém uma goroutine de limpeza que a biblioteca não permite
// encerrar, então deve ser criado uma vez e reaproveitado.
type Cache struct {
	lru        *expirable.LRU[uuid.UUID, bool]
	maxEntries int
	ttl        time.Duration
}

// NewCache cria um novo cache de veredictos. Valores não positivos usam os padrões.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		lru:        expirable.NewLRU[uuid.UUID, bool](maxEntries, nil, ttl),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get retorna o veredicto em cache, se existir e não tiver expirado.
func (c *Cache) Get(key uuid.UUID) (bool, bool) {
	return c.lru.Get(key)
}

// Contains verifica a presença sem alterar a ordem de uso.
func (c *Cache) Contains(key uuid.UUID) bool {
	_, ok := c.lru.Peek(key)
	return ok
}

// Set armazena um veredicto, substituindo o anterior.
func (c *Cache) Set(key uuid.UUID, colored bool) {
	c.lru.Add(key, colored)
}

// Len retorna o número de entradas, incluindo expiradas ainda não limpas.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge remove todas as entradas.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Resize muda o limite de entradas, descartando as mais antigas se preciso.
// Valores não positivos usam o padrão.
func (c *Cache) Resize(maxEntries int) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	c.lru.Resize(maxEntries)
	c.maxEntries = maxEntries
}

// MaxEntries retorna o limite de entradas.
func (c *Cache) MaxEntries() int { return c.maxEntries }

// TTL retorna o prazo de expiração das entradas.
func (c *Cache) TTL() time.Duration { return c.ttl }
