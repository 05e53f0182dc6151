package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-key limiter backed by Redis. It
// guards the credential endpoints against brute forcing.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (r *RateLimiter) ByIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.prefix, c.IP())
		ctx := c.Context()
		count, err := r.rdb.Incr(ctx, key).Result()
		if err != nil {
			// limiter trouble must not take auth down
			return c.Next()
		}
		if count == 1 {
			r.rdb.Expire(ctx, key, r.window)
		}
		if count > int64(r.limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "rate limit exceeded"})
		}
		return c.Next()
	}
}
