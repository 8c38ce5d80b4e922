package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectRedis establishes connection to Redis. It returns nil when REDIS_ADDR
// is unset or the server does not answer, and token revocation is then disabled.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		zap.S().Info("REDIS_ADDR not set, token revocation disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		zap.S().Warnf("Redis connection failed: %v", err)
		zap.S().Warn("Token revocation will be disabled")
		_ = client.Close()
		return nil
	}

	zap.S().Info("Connected to Redis")
	return client
}

// CloseRedis closes the Redis connection
func CloseRedis(client *redis.Client) {
	if client != nil {
		_ = client.Close()
	}
}
