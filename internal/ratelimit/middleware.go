package ratelimit

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/errors"
	"codeberg.org/wayfare/server/internal/logger"
)

// Middleware rejects bursts before any quota or provider work happens.
// Authenticated callers are keyed by user ID, anonymous ones by client IP.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetString("user_id")
		if identity == "" {
			identity = c.ClientIP()
		}

		allowed, err := l.Admit(c.Request.Context(), identity)
		if err != nil {
			// the limiter is a protective layer; if it breaks, log and let
			// the quota gate remain the enforcement point
			logger.ErrorErr(err, "rate limiter unavailable", "identity", identity)
			c.Next()
			return
		}

		if !allowed {
			errors.RateLimited(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
