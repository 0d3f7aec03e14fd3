package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"customerapp/internal/adapter/http/helper"
	"customerapp/internal/adapter/telemetry"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimiter counts requests per client and route in fixed windows.
type RateLimiter struct {
	cache    *cache.Cache
	defaults RateLimitConfig
	routes   map[string]RateLimitConfig
	logger   *zap.Logger
	metrics  *telemetry.AppMetrics
	mutex    sync.Mutex
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(defaults RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:    cache.New(defaults.Window, 2*defaults.Window),
		defaults: defaults,
		routes:   make(map[string]RateLimitConfig),
		logger:   logger,
		metrics:  metrics,
	}
}

// SetConfig overrides the limit of one route, keyed as "METHOD /path/:param".
func (rl *RateLimiter) SetConfig(route string, config RateLimitConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.routes[route] = config
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		route := c.Request.Method + " " + path

		config := rl.configFor(route)
		key := fmt.Sprintf("rate_limit:%s:%s", route, c.ClientIP())

		allowed, remaining, resetTime := rl.check(key, config)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path)
			}

			rl.logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			retryAfter := int(time.Until(resetTime).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			helper.SendError(c, http.StatusTooManyRequests, "RATE_LIMITED", []helper.FieldError{{
				Field:   "request",
				Message: fmt.Sprintf("too many requests, limit is %d per %v", config.Requests, config.Window),
			}})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path)
		}

		c.Next()
	}
}

func (rl *RateLimiter) configFor(route string) RateLimitConfig {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if config, ok := rl.routes[route]; ok {
		return config
	}
	return rl.defaults
}

func (rl *RateLimiter) check(key string, config RateLimitConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if item, found := rl.cache.Get(key); found {
		entry := item.(rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= config.Requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, time.Until(entry.ResetTime))

			return true, config.Requests - entry.Count, entry.ResetTime
		}
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, rateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}
