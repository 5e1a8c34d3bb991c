//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curio/internal/platform/config"
	"curio/pkg/testutil/containers"
)

func Test_Client_Health(t *testing.T) {
	rc := containers.NewRedisContainer(t)

	client, err := New(config.Config{
		RedisURL:          rc.Addr,
		RedisPoolSize:     10,
		RedisDialTimeout:  5 * time.Second,
		RedisReadTimeout:  3 * time.Second,
		RedisWriteTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	defer client.Close()

	t.Run("reachable instance reports healthy", func(t *testing.T) {
		assert.NoError(t, client.Health(context.Background()))
	})

	t.Run("cancelled context reports failure", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Error(t, client.Health(ctx))
	})
}

func Test_New_NotConfigured(t *testing.T) {
	client, err := New(config.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
