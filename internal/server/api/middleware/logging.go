package middleware

import (
	"time"

	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/gin-gonic/gin"
)

// Logging writes one structured line per request. Server errors are logged
// at error level together with the errors handlers attached via c.Error.
func Logging(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if email := c.GetString(ContextKeyEmail); email != "" {
			args = append(args, "email", email)
		}

		switch {
		case c.Writer.Status() >= 500:
			if len(c.Errors) > 0 {
				args = append(args, "error", c.Errors.String())
			}
			logger.Error(ctx, "request failed", args...)
		case len(c.Errors) > 0:
			logger.Warn(ctx, "request rejected", append(args, "error", c.Errors.String())...)
		default:
			logger.Info(ctx, "request served", args...)
		}
	}
}
