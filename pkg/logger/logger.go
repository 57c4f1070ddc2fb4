package logger

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// Setup configures the standard logrus logger with a JSON formatter
func Setup(level string) {
	SetupWithOutput(level, os.Stdout)
}

// SetupWithOutput is Setup with an explicit writer
func SetupWithOutput(level string, out io.Writer) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// FromContext returns a log entry tagged with the request id, if any
func FromContext(c *gin.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if id, ok := c.Get("request_id"); ok {
		entry = entry.WithField("request_id", id)
	}
	if user, ok := c.Get("userID"); ok {
		entry = entry.WithField("user", user)
	}
	return entry
}

// Middleware assigns a request id and logs every request once it completes
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		entry := FromContext(c).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		if c.Writer.Status() >= 500 {
			entry.Warn("request failed")
			return
		}
		entry.Info("request completed")
	}
}
