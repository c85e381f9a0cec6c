package middleware

import (
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const LoggerKey = "logger"

// Logger makes log available to handlers through GetLogger, tagged with the
// request method and path.
func Logger(log *zap.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		c.Set(LoggerKey, log.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		))
		c.Next()
	}
}

// GetLogger returns the request logger, or a no-op logger when Logger did
// not run.
func GetLogger(c *drift.Context) *zap.Logger {
	if l, ok := c.Get(LoggerKey); ok {
		if log, ok := l.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}
