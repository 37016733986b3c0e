package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spacesedan/positivipy/internal/monitoring"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	// Apology is served with a 200 whenever a request fails internally.
	Apology = "Ooops! Something went wrong!"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		monitoring.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())

		logger(c).Info("[HTTP] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("elapsed", elapsed))
	}
}

// Recovery turns panics into the apology page.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger(c).Error("[HTTP] Recovered from panic", slog.Any("panic", recovered))
		c.String(http.StatusOK, Apology)
		c.Abort()
	})
}

func logger(c *gin.Context) *slog.Logger {
	return slog.Default().With(slog.String(requestIDKey, c.GetString(requestIDKey)))
}
