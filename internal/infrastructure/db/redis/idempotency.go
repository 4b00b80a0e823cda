package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which todo a client's Idempotency-Key produced.
// Key format: idem:<owner_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore. If ttl <= 0, 24h is used.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the todo id recorded for the key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, ownerID, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(ownerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records todoID for the key unless another request got there first.
// It reports whether this call stored the mapping.
func (s *IdempotencyStore) Remember(ctx context.Context, ownerID, key, todoID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(ownerID, key), todoID, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency remember: %w", err)
	}
	return ok, nil
}

func (s *IdempotencyStore) key(ownerID, key string) string {
	return fmt.Sprintf("idem:%s:%s", ownerID, key)
}
