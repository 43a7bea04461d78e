package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/clubhub/clubhub/application/port/inbound"
)

// Config holds the redis-backed login throttle settings.
type Config struct {
	Enabled  bool
	RedisURL string
}

type rateLimitService struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewRateLimitService connects to redis, or returns a no-op service when
// throttling is disabled.
func NewRateLimitService(config Config, logger *logrus.Logger) (inbound.RateLimitService, error) {
	if !config.Enabled {
		logger.Info("Rate limiting disabled")
		return &noopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Rate limiting service initialized")
	return &rateLimitService{client: client, logger: logger}, nil
}

// CheckLimit counts the attempt and reports whether the key stays under the
// limit for the window. The counter expires with the window.
func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipeline := s.client.Pipeline()
	incr := pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, window)
	if _, err := pipeline.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	count := incr.Val()
	s.logger.WithFields(logrus.Fields{
		"key":     key,
		"current": count,
		"limit":   limit,
	}).Debug("Rate limit check")

	return count <= int64(limit), nil
}

func (s *rateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := "blocked:" + key
	pipeline := s.client.Pipeline()
	pipeline.HSet(ctx, blockKey, map[string]interface{}{
		"reason":     reason,
		"blocked_at": time.Now().Unix(),
		"duration":   duration.Seconds(),
	})
	pipeline.Expire(ctx, blockKey, duration)
	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":      key,
		"duration": duration,
		"reason":   reason,
	}).Warn("Key blocked due to rate limit exceeded")
	return nil
}

func (s *rateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, "blocked:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

type noopRateLimitService struct{}

func (n *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (n *noopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}
