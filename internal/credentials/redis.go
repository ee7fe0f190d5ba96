//go:build !js || !wasm

package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "studio:credentials"

// RedisStore implements Store on Redis, so multiple proxy instances
// share one credential pair and one renewal outcome.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. An empty key selects the
// default "studio:credentials".
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Get retrieves the pair from Redis
func (r *RedisStore) Get(ctx context.Context) (*Pair, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credentials from redis: %w", err)
	}

	pair := &Pair{}
	if err := json.Unmarshal(data, pair); err != nil {
		return nil, fmt.Errorf("failed to parse credentials from redis: %w", err)
	}
	if !pair.Complete() {
		return nil, ErrNotFound
	}
	return pair, nil
}

// Set persists the pair as a single JSON value, so readers never see a
// torn pair.
func (r *RedisStore) Set(ctx context.Context, pair *Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	encoded, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := r.client.Set(ctx, r.key, encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to store credentials in redis: %w", err)
	}
	return nil
}

// Clear removes the pair from Redis
func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials in redis: %w", err)
	}
	return nil
}

// Name returns the store name
func (r *RedisStore) Name() string {
	return fmt.Sprintf("RedisStore(%s)", r.key)
}
