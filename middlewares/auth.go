package middlewares

import (
	"net/http"
	"strings"

	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects the request unless a valid bearer token is presented.
// It only establishes identity; role checks live in the services, resolved
// from group membership per request.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}
		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// AuthOptional establishes identity when a valid token is present and lets
// anonymous requests through. Public read endpoints use it so throttling can
// tell authenticated callers apart from anonymous ones.
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, secret); ok {
			c.Set("userId", claims.UserID)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, secret string) (*utils.Claims, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}
	claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}
