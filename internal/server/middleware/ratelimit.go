package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateCounter counts requests per subject in fixed one-minute windows.
type RateCounter interface {
	IncrementRateLimit(ctx context.Context, subject string, at time.Time) (int64, error)
}

// RateLimit rejects a client after limit requests in the current minute.
// Authenticated callers are counted by user id, others by client IP. When
// the counter is unavailable requests pass through.
func RateLimit(counter RateCounter, limit int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if userID := UserID(c); userID != "" {
			subject = "user:" + userID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := counter.IncrementRateLimit(ctx, subject, time.Now())
		if err != nil {
			logger.Error("failed to check rate limit",
				zap.String("subject", subject),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if count > int64(limit) {
			logger.Warn("rate limit exceeded",
				zap.String("subject", subject),
				zap.Int64("count", count),
			)
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
