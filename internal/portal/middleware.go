package portal

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const companyIDKey = "company_id"

// CompanyID returns the company resolved by either auth middleware.
func CompanyID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(companyIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// APIKeyAuth guards client-facing endpoints with the X-API-Key header.
func APIKeyAuth(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader("X-API-Key")
		if rawKey == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "X-API-Key header missing"})
			return
		}

		companyID, err := service.ValidateKey(c.Request.Context(), rawKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		c.Set(companyIDKey, companyID)
		c.Next()
	}
}

// SessionAuth guards portal endpoints with a Bearer JWT.
func SessionAuth(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		companyID, err := service.ParseSession(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(companyIDKey, companyID)
		c.Next()
	}
}
