package middleware

import (
	"context"
	"time"

	"github.com/jbclements/t-test/internal"

	"github.com/gin-gonic/gin"
)

// RequestTimeout bounds the request context handlers see
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs one line per request at DEBUG, or WARN for 5xx
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			logger.Warn("%s %s -> %d (%s) %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.Errors.String())
			return
		}
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
