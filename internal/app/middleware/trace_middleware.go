package middleware

import (
	"lendsafe/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-Id"

// AttachTraceID puts a trace id on every request context so all log lines
// for one request correlate. An incoming header wins over a fresh id.
func AttachTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(TraceIDHeader, traceID)

		c.Next()
	}
}
