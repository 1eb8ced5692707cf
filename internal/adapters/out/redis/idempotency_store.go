// Package redis keeps Idempotency-Key reservations in Redis so replays are
// recognised across every API instance.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "idempotency:"
	pendingValue = "pending"

	// DefaultTTL is how long a completed key keeps returning its order.
	DefaultTTL = 24 * time.Hour
	// DefaultPendingTTL bounds how long an unfinished reservation blocks its key.
	DefaultPendingTTL = time.Minute
)

// IdempotencyStore implements ports.IdempotencyStore.
//
// A key moves through two values: "pending" while the placement runs and the
// order id once it committed. The pending value carries the short pendingTTL,
// so a crashed placement or a lost Complete frees the key quickly; the order
// id is kept for ttl.
type IdempotencyStore struct {
	client     goredis.UniversalClient
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore creates the store. A ttl <= 0 uses DefaultTTL and a
// pendingTTL <= 0 uses DefaultPendingTTL.
func NewIdempotencyStore(client goredis.UniversalClient, ttl, pendingTTL time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl, pendingTTL: pendingTTL}
}

// Reserve claims key with SET NX.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, *kernel.UUID, error) {
	k := keyPrefix + key

	// Two attempts: the existing key may expire between SETNX and GET.
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingValue, s.pendingTTL).Result()
		if err != nil {
			return false, nil, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if ok {
			return true, nil, nil
		}

		value, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return false, nil, fmt.Errorf("read idempotency key: %w", err)
		}
		if value == pendingValue {
			return false, nil, nil
		}

		orderID, err := kernel.UUIDFromString(value)
		if err != nil {
			return false, nil, fmt.Errorf("corrupt idempotency key %q: %w", key, err)
		}
		return false, &orderID, nil
	}

	return false, nil, nil
}

// Complete stores orderID under key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	if err := s.client.Set(ctx, keyPrefix+key, orderID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release deletes key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
