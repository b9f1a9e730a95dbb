// Package ratelimit contiene los limitadores de peticiones: un token bucket por clave
// (x/time/rate) y un fiber.Storage sobre Redis para el limitador de ventana fija.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedConfig parámetros del limitador por clave.
type KeyedConfig struct {
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
}

type keyLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// KeyedLimiter mantiene un rate.Limiter por clave (IP del cliente en los endpoints de auth).
// Las entradas sin uso por más de 2×CleanupInterval se eliminan en segundo plano.
type KeyedLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu       sync.RWMutex
	limiters map[string]*keyLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewKeyedLimiter arranca la limpieza periódica; llamar Stop al apagar.
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	kl := &KeyedLimiter{
		limit:    rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:    cfg.Burst,
		ttl:      cfg.CleanupInterval * 2,
		limiters: make(map[string]*keyLimiter),
		stopCh:   make(chan struct{}),
	}
	go kl.cleanupLoop(cfg.CleanupInterval)
	return kl
}

// Allow consume un token de la clave.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.get(key).Allow()
}

// RetryAfter segundos estimados hasta que se repone un token.
func (kl *KeyedLimiter) RetryAfter() int {
	sec := int(math.Ceil(1.0 / float64(kl.limit)))
	if sec < 1 {
		sec = 1
	}
	return sec
}

// Len número de claves vigiladas.
func (kl *KeyedLimiter) Len() int {
	kl.mu.RLock()
	defer kl.mu.RUnlock()
	return len(kl.limiters)
}

// Stop detiene la limpieza. Idempotente.
func (kl *KeyedLimiter) Stop() {
	kl.stopOnce.Do(func() { close(kl.stopCh) })
}

func (kl *KeyedLimiter) get(key string) *rate.Limiter {
	now := time.Now()

	kl.mu.RLock()
	kv, ok := kl.limiters[key]
	kl.mu.RUnlock()
	if ok {
		kl.mu.Lock()
		kv.lastAccess = now
		kl.mu.Unlock()
		return kv.limiter
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()
	// doble chequeo
	if kv, ok := kl.limiters[key]; ok {
		kv.lastAccess = now
		return kv.limiter
	}
	l := rate.NewLimiter(kl.limit, kl.burst)
	kl.limiters[key] = &keyLimiter{limiter: l, lastAccess: now}
	return l
}

func (kl *KeyedLimiter) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			kl.cleanup(time.Now())
		case <-kl.stopCh:
			return
		}
	}
}

func (kl *KeyedLimiter) cleanup(now time.Time) {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for key, kv := range kl.limiters {
		if now.Sub(kv.lastAccess) > kl.ttl {
			delete(kl.limiters, key)
		}
	}
}
