package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	bearerPrefix = "Bearer"

	// ShareGrantKey holds the composition ID a verified share token grants
	ShareGrantKey = "share_composition_id"
)

// ShareTokenAuth verifies a download token from ?token= or the Authorization header
// and checks it grants the composition named by the :id route parameter
func ShareTokenAuth(share *services.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !share.Enabled() {
			c.JSON(http.StatusNotFound, gin.H{"error": "Share links are not enabled"})
			c.Abort()
			return
		}

		tokenString := c.Query("token")

		// Fall back to "Bearer <token>"
		if tokenString == "" {
			parts := strings.Split(c.GetHeader("Authorization"), " ")
			if len(parts) == 2 && parts[0] == bearerPrefix {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Share token required"})
			c.Abort()
			return
		}

		granted, err := share.Verify(tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, services.ErrSharingDisabled) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": "Invalid or expired share token"})
			c.Abort()
			return
		}

		if granted != c.Param("id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Share token does not grant this composition"})
			c.Abort()
			return
		}

		c.Set(ShareGrantKey, granted)
		c.Next()
	}
}

// GetShareGrant retrieves the composition ID granted by ShareTokenAuth
func GetShareGrant(c *gin.Context) (string, bool) {
	val, exists := c.Get(ShareGrantKey)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
