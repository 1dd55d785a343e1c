// Package ratelimit, IP bazlı fixed-window rate limiting sağlar.
//
// Davet kodları tahmin edilebilir uzunlukta olmasa da, join endpoint'i
// auth'lu herhangi bir kullanıcının rastgele kod denemesine açıktır.
// Bu limiter brute-force taramayı pratikte anlamsız kılar.
package ratelimit

import (
	"sync"
	"time"
)

// bucket, tek bir IP'nin mevcut penceresi.
type bucket struct {
	count       int
	windowStart time.Time
}

// JoinRateLimiter, davet ile katılma denemelerini IP başına sınırlar.
// Pencere dolduğunda sayaç sıfırlanır (fixed window).
type JoinRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
}

// NewJoinRateLimiter, constructor.
// maxAttempts: pencere başına izin verilen deneme sayısı.
// window: pencere süresi.
func NewJoinRateLimiter(maxAttempts int, window time.Duration) *JoinRateLimiter {
	return &JoinRateLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow, verilen IP'nin bir deneme daha yapıp yapamayacağını döner.
// İzin veriliyorsa sayaç artırılır.
func (l *JoinRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	b, ok := l.buckets[ip]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	if b.count >= l.maxAttempts {
		return false
	}

	b.count++
	return true
}

// Cleanup, süresi geçmiş bucket'ları bellekten düşürür.
// main'den periyodik bir goroutine ile çağrılır.
func (l *JoinRateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for ip, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, ip)
		}
	}
}
