package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "school_admin_bot:session:"

// RedisStore хранит сессии в Redis, переживает перезапуск бота
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(telegramID int64) string {
	return redisKeyPrefix + strconv.FormatInt(telegramID, 10)
}

func (r *RedisStore) Load(ctx context.Context, telegramID int64) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, redisKey(telegramID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}
	return data, true, nil
}

func (r *RedisStore) Save(ctx context.Context, telegramID int64, data []byte) error {
	if err := r.client.Set(ctx, redisKey(telegramID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, telegramID int64) error {
	if err := r.client.Del(ctx, redisKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
