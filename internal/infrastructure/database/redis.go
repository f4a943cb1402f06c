package database

import (
	"context"
	"fmt"

	"mealmate-api/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient 建立文件資料庫連線（Firebase RTDB 的替代後端）
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
