package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

var rateLimitClock = time.Now

// RateLimit allows limit requests per client IP and route per minute, counted
// in Redis so every instance shares the budget. A nil client or a
// non-positive limit disables it, and Redis failures let the request through.
func RateLimit(rdb *redis.Client, limit int) echo.MiddlewareFunc {
	if rdb == nil || limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			window := rateLimitClock().Unix() / int64(rateLimitWindow.Seconds())
			key := fmt.Sprintf("rl:%s:%s:%d", c.Path(), c.RealIP(), window)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			defer cancel()

			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, rateLimitWindow)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("[RateLimit] redis unavailable, allowing request: %v", err)
				return next(c)
			}

			count := incr.Val()
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
