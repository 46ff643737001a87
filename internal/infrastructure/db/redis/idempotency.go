package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// KeyValue is the part of the redis client the store uses. *redis.Client
// satisfies it.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// IdempotencyStore remembers which resource a client retry key produced.
// Key format: idem:<scope>:<owner>:<key>
type IdempotencyStore struct {
	client KeyValue
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl uses a 24h default.
func NewIdempotencyStore(client KeyValue, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the resource ID stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, scope, owner, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(scope, owner, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores resourceID under key unless another request got there first.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, owner, key, resourceID string) error {
	if err := s.client.SetNX(ctx, s.key(scope, owner, key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, owner, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", scope, owner, key)
}
