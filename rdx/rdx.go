package rdx

import (
	"context"
	"time"

	"calyx/config"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared Redis client.
func Init(ctx context.Context, cfg *config.Config) error {
	Conn = redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	return Conn.Ping(ctx).Err()
}

func Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return Conn.Set(ctx, key, value, ttl).Err()
}

func Get(ctx context.Context, key string) (string, error) {
	val, err := Conn.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func Del(ctx context.Context, key string) error {
	return Conn.Del(ctx, key).Err()
}
