package flash

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	"github.com/mumanal/actualizacion-datos/internal/domain/repository"
	"github.com/mumanal/actualizacion-datos/pkg/helpers"
)

func bannerKey(sessionID string) string {
	return "banner:" + sessionID
}

// RedisStore keeps banners as JSON values that Redis expires after ttl.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, b entity.Banner) error {
	return helpers.RedisSetJSON(ctx, s.rdb, bannerKey(sessionID), b, s.ttl)
}

func (s *RedisStore) Pop(ctx context.Context, sessionID string) (entity.Banner, bool, error) {
	var b entity.Banner
	ok, err := helpers.RedisPopJSON(ctx, s.rdb, bannerKey(sessionID), &b)
	return b, ok, err
}

var _ repository.BannerStore = (*RedisStore)(nil)
