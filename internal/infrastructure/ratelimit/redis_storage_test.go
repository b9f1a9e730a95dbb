package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startRedis levanta un contenedor Redis; salta el test si Docker no está disponible.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() || os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("tests con Docker deshabilitados")
	}
	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		t.Skip("Docker no disponible")
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "redis", Tag: "7-alpine"},
		func(hc *docker.HostConfig) {
			hc.AutoRemove = true
			hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
	if err != nil {
		t.Skipf("no se pudo iniciar redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort("6379/tcp")})
	pool.MaxWait = 60 * time.Second
	require.NoError(t, pool.Retry(func() error { return client.Ping(context.Background()).Err() }))
	return client
}

func TestRedisStorage(t *testing.T) {
	client := startRedis(t)
	s := NewRedisStorageFromClient(client)
	defer s.Close()

	v, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("10.0.0.1", []byte("3"), time.Minute))
	v, err = s.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)

	ttl, err := client.TTL(context.Background(), defaultPrefix+"10.0.0.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, client.Set(context.Background(), "ajena", "x", 0).Err())
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set(fmt.Sprintf("k%d", i), []byte("1"), 0))
	}
	require.NoError(t, s.Delete("k0"))
	v, _ = s.Get("k0")
	assert.Nil(t, v)

	require.NoError(t, s.Reset())
	v, _ = s.Get("k1")
	assert.Nil(t, v)
	other, err := client.Get(context.Background(), "ajena").Result()
	require.NoError(t, err)
	assert.Equal(t, "x", other, "Reset no toca claves sin prefijo")
}

func TestNewRedisStorage_URLInvalida(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "://bad")
	assert.Error(t, err)
}
