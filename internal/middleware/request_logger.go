package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/logger"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// RequestLogger logs every request to the console and, when a logging
// service is wired, persists a LogEntry to Mongo. Persistence goes
// through the async worker pool when one is running and degrades to a
// goroutine per request otherwise, so a slow log store never delays a
// plan response.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := GetRequestID(c)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		consoleLog(c, requestID, status, latency)

		if loggingService == nil {
			return
		}
		entry := buildLogEntry(c, requestID, status, latency)

		if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
			asyncLogger.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = loggingService.CreateLog(ctx, entry)
		}()
	}
}

func consoleLog(c *gin.Context, requestID string, status int, latency time.Duration) {
	log := logger.Logger().With().
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status_code", status).
		Int64("duration_ms", latency.Milliseconds()).
		Str("ip", c.ClientIP()).
		Str("user_agent", c.Request.UserAgent()).
		Logger()

	switch {
	case status >= 500:
		log.Error().Msg("HTTP request")
	case status >= 400:
		log.Warn().Msg("HTTP request")
	default:
		log.Info().Msg("HTTP request")
	}
}

func buildLogEntry(c *gin.Context, requestID string, status int, latency time.Duration) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      getLogLevel(status),
		Message:    "HTTP request",
		RequestID:  requestID,
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		Duration:   latency.Milliseconds(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}

	// The JWT middleware runs earlier, so an authenticated request carries
	// the acting account.
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			entry.UserID = id.Hex()
		}
	}
	if userEmail, exists := c.Get("user_email"); exists {
		if email, ok := userEmail.(string); ok {
			entry.UserEmail = email
		}
	}
	return entry
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
