package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /api/health
func HandleHealth(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		failed := make(map[string]string)
		for name, backend := range hc.Backends {
			if err := backend.Ping(ctx); err != nil {
				hc.Logger.Error("health check failed",
					zap.String("backend", name),
					zap.Error(err),
				)
				failed[name] = "unavailable"
			}
		}

		if len(failed) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "backends": failed})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
