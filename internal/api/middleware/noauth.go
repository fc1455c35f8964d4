package middleware

import (
	"github.com/gin-gonic/gin"
)

// AnonymousUser is recorded as the owner of compositions when AUTH_MODE=none
const AnonymousUser = "anonymous"

// NoAuth is a pass-through middleware for when AUTH_MODE=none.
// It allows all requests without authentication.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", AnonymousUser)
		c.Next()
	}
}
