package classifier

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCache_Defaults(t *testing.T) {
	c := NewCache(0, 0)
	assert.Equal(t, DefaultMaxEntries, c.MaxEntries())
	assert.Equal(t, DefaultTTL, c.TTL())
}

func TestCache_SetGet(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := uuid.New()

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, true)
	v, ok := c.Get(key)
	assert.True(t, ok)
	assert.True(t, v)
	assert.True(t, c.Contains(key))

	// Substituição completa do valor
	c.Set(key, false)
	v, ok = c.Get(key)
	assert.True(t, ok)
	assert.False(t, v)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache(10, 100*time.Millisecond)
	key := uuid.New()

	c.Set(key, true)
	_, ok := c.Get(key)
	assert.True(t, ok)

	time.Sleep(300 * time.Millisecond)

	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.False(t, c.Contains(key))
}

func TestCache_ReadsDoNotExtendExpiry(t *testing.T) {
	c := NewCache(10, 100*time.Millisecond)
	key := uuid.New()
	c.Set(key, true)

	// Leituras frequentes não renovam o prazo.
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		c.Get(key)
		time.Sleep(10 * time.Millisecond)
	}

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestCache_Capacity(t *testing.T) {
	const limit = 50
	c := NewCache(limit, time.Minute)

	for i := 0; i < limit*4; i++ {
		c.Set(uuid.NewMD5(uuid.Nil, []byte(fmt.Sprintf("item-%d", i))), i%2 == 0)
		assert.LessOrEqual(t, c.Len(), limit)
	}
	assert.Equal(t, limit, c.Len())
}

func TestCache_Resize(t *testing.T) {
	c := NewCache(10, time.Minute)
	for i := 0; i < 10; i++ {
		c.Set(uuid.NewMD5(uuid.Nil, []byte(fmt.Sprintf("item-%d", i))), true)
	}

	c.Resize(4)
	assert.Equal(t, 4, c.MaxEntries())
	assert.Equal(t, 4, c.Len())

	c.Resize(0)
	assert.Equal(t, DefaultMaxEntries, c.MaxEntries())
}

func TestCache_Purge(t *testing.T) {
	c := NewCache(10, time.Minute)
	c.Set(uuid.New(), true)
	c.Set(uuid.New(), false)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}
