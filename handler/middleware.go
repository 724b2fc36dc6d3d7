package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jfinfosena/25adso-pap/log"
	"github.com/sirupsen/logrus"
)

// RequestLogger tags every request with an id, attaches a logger carrying it
// to the request context, and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := log.GetLogger(c.Request.Context()).WithFields(logrus.Fields{
			"request_id": uuid.New().String(),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(log.WithLogger(c.Request.Context(), entry))

		c.Next()

		entry.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Infoln("request done")
	}
}

// CORS mirrors the permissive headers browsers need for the docs UI and
// local frontends.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// RateLimiter is a fixed-window counter per client IP backed by Redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// RateKey buckets now into the current window for the given client.
func RateKey(clientIP string, now time.Time, window time.Duration) string {
	return fmt.Sprintf("rate:%s:%d", clientIP, now.Truncate(window).Unix())
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := RateKey(c.ClientIP(), time.Now(), rl.window)
		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API down with it.
			log.GetLogger(ctx).WithError(err).Warnln("rate limiter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}
		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
