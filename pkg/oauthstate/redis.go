package oauthstate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "oauthstate:"

// RedisStore keeps states in Redis so that a callback can be handled by
// any instance behind a load balancer.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed state store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+state, "1", ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, state string) error {
	// GETDEL makes redeem-once atomic without a script.
	err := s.client.GetDel(ctx, redisKeyPrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return ErrStateNotFound
	}
	return err
}

// Compile-time interface assertion
var _ Store = (*RedisStore)(nil)
