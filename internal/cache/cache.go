// Package cache provides the advisory read cache used by the settings store.
package cache

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is a keyed cache with per-entry expiry. Implementations must be safe
// for concurrent use and must report expired entries as absent.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(key string)
}

// Memory is an in-process Cache backed by ttlcache.
type Memory[V any] struct {
	cache     *ttlcache.Cache[string, V]
	janitor   chan struct{} // closed when Start returns
	closeOnce sync.Once
}

var _ Cache[struct{}] = (*Memory[struct{}])(nil)

// NewMemory creates a Memory cache and starts its expiry janitor.
// Callers must call Close to stop it.
func NewMemory[V any]() *Memory[V] {
	c := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, V](),
	)
	m := &Memory[V]{cache: c, janitor: make(chan struct{})}
	go func() {
		defer close(m.janitor)
		c.Start()
	}()
	return m
}

// Get returns the value for key if it is present and not expired.
func (m *Memory[V]) Get(key string) (V, bool) {
	item := m.cache.Get(key)
	if item == nil || item.IsExpired() {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key, replacing any existing entry.
func (m *Memory[V]) Set(key string, value V, ttl time.Duration) {
	m.cache.Set(key, value, ttl)
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Memory[V]) Delete(key string) {
	m.cache.Delete(key)
}

// Len reports the number of entries, including ones not yet swept.
func (m *Memory[V]) Len() int {
	return m.cache.Len()
}

// Close stops the expiry janitor and waits for it to exit. It is safe to
// call more than once.
func (m *Memory[V]) Close() {
	m.closeOnce.Do(func() {
		// Stop is a no-op until Start has marked the janitor running
		for {
			m.cache.Stop()
			select {
			case <-m.janitor:
				return
			case <-time.After(time.Millisecond):
			}
		}
	})
}
