package api

import (
	"alcyxob/exercise-tracker/internal/observability"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the per-request correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 64

// RequestLogger assigns a request id, attaches a request-scoped zerolog
// logger to the request context, and records one log line and one metrics
// sample per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := log.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		observability.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)

		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = reqLogger.Error()
		case status >= http.StatusBadRequest:
			event = reqLogger.Warn()
		default:
			event = reqLogger.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request handled")
	}
}

// requestLogger returns the logger RequestLogger attached, or a disabled one.
func requestLogger(c *gin.Context) *zerolog.Logger {
	return zerolog.Ctx(c.Request.Context())
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// internalError logs err server-side and answers with a generic 500.
func internalError(c *gin.Context, err error, logMessage string) {
	requestLogger(c).Error().Err(err).Msg(logMessage)
	abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
}
