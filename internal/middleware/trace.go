package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pageza/pantry-chef/internal/tracer"
)

// TraceIDHeader returns the trace ID of the request to the caller
const TraceIDHeader = "X-Trace-ID"

// Trace starts a server span per request
func Trace(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// TraceHeader exposes the active trace ID as a response header
func TraceHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID := tracer.TraceID(c.Request.Context()); traceID != "" {
			c.Header(TraceIDHeader, traceID)
		}
		c.Next()
	}
}
