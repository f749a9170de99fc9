package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mptsix/todaydiary/internal/pkg/logger"
)

var skipPaths = []string{"/health"}

// Logger logs one line per request: method, path, status, latency, client IP.
// Bodies are never logged; they can carry credentials and journal content.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range skipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		userID := c.GetString("userId")

		if status >= 500 {
			logger.Error("%s %s -> %d (%v) ip=%s user=%s", c.Request.Method, path, status, latency, c.ClientIP(), userID)
			return
		}
		if status >= 400 {
			logger.Warn("%s %s -> %d (%v) ip=%s user=%s", c.Request.Method, path, status, latency, c.ClientIP(), userID)
			return
		}
		logger.Info("%s %s -> %d (%v)", c.Request.Method, path, status, latency)
	}
}
