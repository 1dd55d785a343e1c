// Package cache, TTL (time-to-live) tabanlı basit bir in-memory cache sağlar.
//
// Davet ön izlemesi (GET /api/invites/{code}) auth gerektirmez ve davet
// linki paylaşıldığında aynı kod için art arda çok sayıda istek gelir.
// Her istekte DB'ye gitmek yerine sonuç kısa bir süre burada tutulur —
// üye sayısının birkaç saniye eski olması ön izleme için kabul edilebilir.
//
// Generic tasarım: TTLCache[K comparable, V any] — key ve value tipleri
// compile-time'da belirlenir, type assertion gerekmez.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıt. expiresAt geçmişse kayıt ölüdür.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, süreli in-memory key/value cache.
// Tüm metodlar goroutine-safe'tir.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	done    chan struct{}
}

// New, yeni bir TTLCache oluşturur ve arka planda süresi dolmuş kayıtları
// temizleyen goroutine'i başlatır. İş bitince Close çağrılmalıdır.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go c.evictLoop(cleanupInterval)

	return c
}

// Get, key'e karşılık gelen değeri döner. Kayıt yoksa veya süresi dolmuşsa
// ikinci dönüş değeri false olur.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set, key'i value ile cache'ler. Var olan kayıt üzerine yazılır ve
// TTL sıfırdan başlar.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, kaydı hemen düşürür. Davet kodu rotate edildiğinde eski kodun
// ön izlemesini TTL beklemeden geçersiz kılmak için kullanılır.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len, süresi dolmuş olanlar dahil mevcut kayıt sayısını döner.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, temizlik goroutine'ini durdurur.
func (c *TTLCache[K, V]) Close() {
	close(c.done)
}

// evictLoop, cleanupInterval aralıklarla süresi dolmuş kayıtları siler.
// Get zaten ölü kayıtları görmezden gelir — bu döngü sadece bellek geri
// kazanımı içindir.
func (c *TTLCache[K, V]) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
