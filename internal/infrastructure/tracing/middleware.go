package tracing

import (
	"github.com/gin-gonic/gin"
)

// HTTPMiddleware creates Gin middleware that joins the caller's trace, or
// starts one, and echoes the trace ID on the response.
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := Extract(c.Request.Header)
		if traceID == "" {
			traceID = NewTraceID()
		}

		c.Request = c.Request.WithContext(WithTraceID(c.Request.Context(), traceID))
		c.Header(Header, string(traceID))

		c.Next()
	}
}
