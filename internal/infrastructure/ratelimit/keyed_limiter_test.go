package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_BurstPorClave(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{PerMinute: 1, Burst: 2, CleanupInterval: time.Hour})
	defer kl.Stop()

	assert.True(t, kl.Allow("1.1.1.1"))
	assert.True(t, kl.Allow("1.1.1.1"))
	assert.False(t, kl.Allow("1.1.1.1"))
	assert.True(t, kl.Allow("2.2.2.2"), "otra IP tiene su propio bucket")
	assert.Equal(t, 2, kl.Len())
	assert.Equal(t, 60, kl.RetryAfter())
}

func TestKeyedLimiter_Cleanup(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{PerMinute: 10, Burst: 1, CleanupInterval: time.Minute})
	defer kl.Stop()

	kl.Allow("a")
	kl.cleanup(time.Now())
	assert.Equal(t, 1, kl.Len())

	kl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, kl.Len())
}

func TestKeyedLimiter_Concurrente(t *testing.T) {
	kl := NewKeyedLimiter(KeyedConfig{PerMinute: 60, Burst: 50})
	defer kl.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if kl.Allow("same") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, allowed, 50)
	assert.LessOrEqual(t, allowed, 52)
	kl.Stop()
	kl.Stop()
}
