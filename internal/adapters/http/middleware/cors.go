package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS returns middleware that answers browser cross-origin requests.
// Preflight OPTIONS requests are answered with 204 and never reach the
// handlers (or the rate limiter).
func CORS(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers",
			"X-Quote-Source, X-Cache-Size, X-Fallback, X-Next-Cursor, X-Request-ID, X-Correlation-ID, X-Trace-ID, Retry-After")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
