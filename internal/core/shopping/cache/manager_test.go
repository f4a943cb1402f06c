package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"mealmate-api/internal/infrastructure/config"
	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestNewManagerDisabled(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	assert.Nil(t, NewManager(cfg))
}

func TestManagerSetAndGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	hash := SnapshotHash([]byte(`[{"id":"a"}]`))

	require.NoError(t, m.Set(ctx, "user1", hash, `{"items":[]}`))

	got, err := m.Get(ctx, "user1", hash)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)
}

func TestManagerMiss(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	_, err := m.Get(context.Background(), "user1", "nonexistent")
	assert.Error(t, err)
}

func TestManagerKeyIncludesSnapshotHash(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	oldHash := SnapshotHash([]byte(`[{"id":"a"}]`))
	newHash := SnapshotHash([]byte(`[{"id":"a"},{"id":"b"}]`))
	require.NoError(t, m.Set(ctx, "user1", oldHash, "old"))

	// 快照變更後雜湊不同，舊結果不會被誤用
	_, err := m.Get(ctx, "user1", newHash)
	assert.Error(t, err)

	got, err := m.Get(ctx, "user1", oldHash)
	require.NoError(t, err)
	assert.Equal(t, "old", got)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	hash := SnapshotHash([]byte("x"))
	require.NoError(t, m.Set(ctx, "user1", hash, "value"))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "user1", hash)
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "user1", "h1", "v1"))
	require.NoError(t, m.Set(ctx, "user1", "h2", "v2"))

	// 觸碰 h2 使 h1 成為最久未使用
	_, err := m.Get(ctx, "user1", "h2")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "user1", "h3", "v3"))

	got, err := m.Get(ctx, "user1", "h3")
	require.NoError(t, err)
	assert.Equal(t, "v3", got)
}

func TestSnapshotHashDeterministic(t *testing.T) {
	a := SnapshotHash([]byte("same"))
	b := SnapshotHash([]byte("same"))
	c := SnapshotHash([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestManagerNilSafeClose(t *testing.T) {
	var m *Manager
	assert.NoError(t, m.Close())
}
