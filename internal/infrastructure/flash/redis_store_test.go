package flash

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStoreSetsTTLAndPopClears(t *testing.T) {
	s, mr := newRedisStore(t, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sid-1", entity.SuccessBanner("ok")))
	assert.Equal(t, 5*time.Second, mr.TTL(bannerKey("sid-1")))

	b, ok, err := s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.SuccessBanner("ok"), b)
	assert.False(t, mr.Exists(bannerKey("sid-1")))

	_, ok, err = s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreExpires(t *testing.T) {
	s, mr := newRedisStore(t, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sid-1", entity.ErrorBanner("fallo")))
	require.NoError(t, s.Set(ctx, "sid-2", entity.SuccessBanner("otro")))
	mr.FastForward(6 * time.Second)

	_, ok, err := s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Pop(ctx, "sid-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreLatestBannerWins(t *testing.T) {
	s, _ := newRedisStore(t, 5*time.Second)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "sid-1", entity.ErrorBanner("fallo")))
	require.NoError(t, s.Set(ctx, "sid-1", entity.SuccessBanner("ok")))

	b, ok, err := s.Pop(ctx, "sid-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.BannerSuccess, b.Kind)
}
