package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:daily:"

// RedisStore persists entries as per-key JSON values with a TTL slightly
// longer than the counting window, so stale keys age out without cleanup.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, window time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: window + time.Hour}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]Entry, error) {
	entries := make(map[string]Entry)

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning rate limit keys: %w", err)
		}

		for _, key := range keys {
			val, err := s.client.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					continue // expired between SCAN and GET
				}
				return nil, fmt.Errorf("reading %s: %w", key, err)
			}
			var entry Entry
			if err := json.Unmarshal([]byte(val), &entry); err != nil {
				continue // skip malformed entries
			}
			entries[key[len(redisKeyPrefix):]] = entry
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return entries, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
