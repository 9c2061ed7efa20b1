package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/pkg/logger"
)

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:%s", token)
}

// SaveCart stores a serialized cart snapshot under its token with a TTL.
func SaveCart(ctx context.Context, token string, payload []byte, ttl time.Duration) error {
	if err := client.Set(ctx, cartKey(token), payload, ttl).Err(); err != nil {
		logger.Error("Failed to persist cart snapshot", err, map[string]interface{}{
			"cart_token": token,
		})
		return err
	}
	return nil
}

// LoadCart fetches a serialized cart snapshot. A missing key returns
// (nil, nil) — an expired or never-persisted cart is simply empty.
func LoadCart(ctx context.Context, token string) ([]byte, error) {
	payload, err := client.Get(ctx, cartKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load cart snapshot", err, map[string]interface{}{
			"cart_token": token,
		})
		return nil, err
	}
	return payload, nil
}

// DeleteCart removes a persisted cart snapshot.
func DeleteCart(ctx context.Context, token string) error {
	if err := client.Del(ctx, cartKey(token)).Err(); err != nil {
		logger.Error("Failed to delete cart snapshot", err, map[string]interface{}{
			"cart_token": token,
		})
		return err
	}
	return nil
}
