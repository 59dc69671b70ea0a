package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// OwnerIDHeader is the HTTP header carrying the requesting owner's ID
	OwnerIDHeader = "X-Owner-ID"

	// OwnerIDKey is the key used to store the owner ID in the context
	OwnerIDKey = "owner_id"
)

// OwnerScope middleware requires a valid X-Owner-ID header and stores the
// parsed ID in the context. Every ledger read and write downstream is
// scoped to this owner.
func OwnerScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(OwnerIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + OwnerIDHeader + " header",
				},
			})
			return
		}

		ownerID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid " + OwnerIDHeader + " header",
				},
			})
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Next()
	}
}

// GetOwnerID retrieves the owner ID from the gin context if present
func GetOwnerID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get(OwnerIDKey); exists {
		if ownerID, ok := id.(uuid.UUID); ok {
			return ownerID
		}
	}
	return uuid.Nil
}
