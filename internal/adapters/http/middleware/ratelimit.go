package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/dto"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/ratelimit"
)

// RateLimit returns middleware enforcing the fixed-window limiter on the
// routes it is attached to. Denied requests get 429 with a Retry-After
// header equal to the window length.
func RateLimit(limiter *ratelimit.FixedWindow) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(limiter.Window().Seconds()))

	return func(c *gin.Context) {
		key := clientKey(c)

		if !limiter.Allow(key) {
			logging.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				slog.String("client", key),
				slog.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrorCodeRateLimited,
				"too many requests, please try again later",
			))

			return
		}

		c.Next()
	}
}

// clientKey identifies the caller for rate limiting. Proxy headers only:
// X-Forwarded-For first hop, then X-Real-IP, then the literal "unknown".
// The transport remote address is never consulted, so direct callers
// without proxy headers share one bucket.
func clientKey(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}

	return "unknown"
}
