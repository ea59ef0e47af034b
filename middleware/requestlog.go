package middleware

import (
	"time"

	"forum_backend/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request after the handler chain finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		attrs := []any{
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if author := c.GetString(ContextUsername); author != "" {
			attrs = append(attrs, "author", author)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logging.Logger.Error("request", attrs...)
		case status >= 400:
			logging.Logger.Warn("request", attrs...)
		default:
			logging.Logger.Info("request", attrs...)
		}
	}
}
