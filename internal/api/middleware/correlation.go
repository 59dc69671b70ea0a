package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the trace id end to end: from the
	// dashboard through the API, into the outbox payloads and out the
	// other side of the dispatcher.
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey is the gin context key holding the trace id
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags every request with a trace id. A caller-supplied
// header is honored only when it parses as a UUID; anything else is
// replaced so log lines never echo arbitrary caller input.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if _, err := uuid.Parse(correlationID); err != nil {
			correlationID = uuid.New().String()
		}

		c.Header(CorrelationIDHeader, correlationID)
		c.Set(CorrelationIDKey, correlationID)

		c.Next()
	}
}

// GetCorrelationID returns the trace id stored by CorrelationID, or an
// empty string when the middleware did not run
func GetCorrelationID(c *gin.Context) string {
	id, exists := c.Get(CorrelationIDKey)
	if !exists {
		return ""
	}
	correlationID, ok := id.(string)
	if !ok {
		return ""
	}
	return correlationID
}
