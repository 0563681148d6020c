package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"roombooking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Fixed-window counter, atomic via Lua. The first request in a window sets
// the expiry; requests past the limit get 429 with Retry-After.
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window_seconds = tonumber(ARGV[2])

local count = redis.call('INCR', key)
if count == 1 then
    redis.call('EXPIRE', key, window_seconds)
end

local ttl = redis.call('TTL', key)
if ttl < 0 then
    redis.call('EXPIRE', key, window_seconds)
    ttl = window_seconds
end

local allowed = 0
if count <= limit then
    allowed = 1
end

return { allowed, limit - count, ttl }
`)

func NewRateLimitMiddleware(cfg config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := buildRateKey(c)
		windowSeconds := int64(cfg.Window / time.Second)
		if windowSeconds < 1 {
			windowSeconds = 1
		}

		vals, err := rateLimitScript.Run(c.Request.Context(), rdb, []string{key}, cfg.Limit, windowSeconds).Result()
		if err != nil {
			// Redis being down must not take the API down with it.
			slog.Warn("rate limit check failed", "key", key, "error", err.Error())
			c.Next()
			return
		}

		arr, ok := vals.([]interface{})
		if !ok || len(arr) != 3 {
			slog.Warn("unexpected rate limit script result", "key", key)
			c.Next()
			return
		}

		allowed := asInt64(arr[0]) == 1
		remaining := asInt64(arr[1])
		ttl := asInt64(arr[2])

		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "too_many_requests",
				"retry_after": ttl,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func buildRateKey(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return fmt.Sprintf("rl:user:%s:%s", userID.String(), c.FullPath())
	}
	return fmt.Sprintf("rl:ip:%s:%s", c.ClientIP(), c.FullPath())
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
