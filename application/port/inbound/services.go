package inbound

import (
	"context"
	"time"
)

// RateLimitService throttles login attempts. Implemented by
// infrastructure/service/ratelimit (redis-backed, with a noop fallback).
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
	IsBlocked(ctx context.Context, key string) (bool, error)
}
