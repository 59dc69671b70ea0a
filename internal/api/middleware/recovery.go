package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

type recoveryError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// recoveryResponse mirrors the handler package's error envelope. It is
// redeclared here because the handler package depends on this one.
type recoveryResponse struct {
	Error         recoveryError `json:"error"`
	CorrelationID string        `json:"correlation_id,omitempty"`
}

// Recovery converts a handler panic into the API's error envelope, so a
// crashed request still answers with a traceable 500 instead of a
// dropped connection
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				correlationID := GetCorrelationID(c)

				logger.Error("Panic recovered",
					"error", r,
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"correlation_id", correlationID,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, recoveryResponse{
					Error: recoveryError{
						Code:    "INTERNAL_SERVER_ERROR",
						Message: "An internal server error occurred",
					},
					CorrelationID: correlationID,
				})
			}
		}()

		c.Next()
	}
}
