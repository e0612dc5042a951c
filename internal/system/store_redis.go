package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const statusKey = "vitaran:system:status"

// RedisStore keeps the control flag in Redis so every instance behind a load
// balancer observes an operator toggle immediately. The key never expires;
// a missing key reads as frozen, matching the lifecycle-start state.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed status store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (Status, error) {
	raw, err := s.client.Get(ctx, statusKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return StatusFrozen, nil
		}
		return "", fmt.Errorf("get system status: %w", err)
	}
	status, ok := ParseStatus(raw)
	if !ok {
		// A corrupt flag must fail safe: treat it as frozen.
		return StatusFrozen, nil
	}
	return status, nil
}

func (s *RedisStore) Set(ctx context.Context, status Status) error {
	if err := s.client.Set(ctx, statusKey, string(status), 0).Err(); err != nil {
		return fmt.Errorf("set system status: %w", err)
	}
	return nil
}
