// Package dedup rejects a resubmission of the same person while an earlier one is still fresh.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const keyPrefix = "onboarding:dedup:"

// Deduper claims a content key for a request id.
type Deduper interface {
	// Claim reports true when this is the first submission for key within the TTL.
	Claim(ctx context.Context, key, requestID string) (bool, error)
	// Release forgets key so the applicant may resubmit.
	Release(ctx context.Context, key string) error
}

// Store is the subset of the Redis client the cache needs.
type Store interface {
	SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

// Key hashes a normalized submission identity so no personal data lands in Redis.
func Key(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(sum[:])
}

type RedisDeduper struct {
	store Store
	ttl   time.Duration
}

func NewRedisDeduper(store Store, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{store: store, ttl: ttl}
}

func (d *RedisDeduper) Claim(ctx context.Context, key, requestID string) (bool, error) {
	return d.store.SetIfAbsent(ctx, key, requestID, d.ttl)
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	return d.store.Del(ctx, key)
}

// NopDeduper accepts everything. Used when dedup is disabled.
type NopDeduper struct{}

func (NopDeduper) Claim(context.Context, string, string) (bool, error) { return true, nil }

func (NopDeduper) Release(context.Context, string) error { return nil }
