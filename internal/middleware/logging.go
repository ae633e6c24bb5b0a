package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskmanager/internal/auth"
)

const contextKeyLogger = "logger"

// RequestLogger attaches a request-scoped logrus entry to the context and
// logs one line per completed request.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := log.WithField("request_id", RequestIDFromContext(c))
		c.Set(contextKeyLogger, entry)

		entry.Debugf("request started: %s %s", c.Request.Method, c.Request.URL.Path)
		c.Next()

		fields := logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if uid := auth.UserIDFromContext(c); uid != 0 {
			fields["user_id"] = uid
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		e := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			e.Error("request completed")
		case status >= 400:
			e.Warn("request completed")
		default:
			e.Info("request completed")
		}
	}
}

// LoggerFromContext returns the request-scoped entry, or a bare entry on the
// standard logger when RequestLogger is not installed.
func LoggerFromContext(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(contextKeyLogger); ok {
		if e, ok := v.(*logrus.Entry); ok {
			return e
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
