// Package cache implements the time-boxed page cache in front of the main
// listing. Entries are evicted only by their TTL or an explicit clear;
// mutations leave cached pages stale until the window closes.
package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pagecache:"

type Service struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewService wires the page cache. A nil redis client disables caching.
func NewService(redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{redis: redisClient, ttl: ttl}
}

// Middleware serves a cached rendering of the wrapped route when one exists,
// keyed by path and query, and stores successful responses for the TTL.
func (s *Service) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.redis == nil {
			return c.Next()
		}

		key := keyPrefix + c.OriginalURL()
		cached, err := s.redis.Get(c.Context(), key).Bytes()
		if err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			_ = s.redis.Set(c.Context(), key, body, s.ttl).Err()
		}
		return nil
	}
}

// Clear drops every cached page and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	if s.redis == nil {
		return 0, nil
	}

	keys, err := s.redis.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return 0, err
	}
	return len(keys), nil
}
