package service

import (
	"context"
	"time"

	"github.com/shajghor/shajghor-backend/pkg/redis"
)

// redisCartStore adapts the shared redis package to the CartStore
// interface. Only wired when REDIS_ENABLED is set.
type redisCartStore struct{}

func NewRedisCartStore() CartStore {
	return redisCartStore{}
}

func (redisCartStore) Save(ctx context.Context, token string, payload []byte, ttl time.Duration) error {
	return redis.SaveCart(ctx, token, payload, ttl)
}

func (redisCartStore) Load(ctx context.Context, token string) ([]byte, error) {
	return redis.LoadCart(ctx, token)
}

func (redisCartStore) Delete(ctx context.Context, token string) error {
	return redis.DeleteCart(ctx, token)
}
