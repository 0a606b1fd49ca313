package middleware

import (
	"net/http"
	"strings"

	"mastoride/internal/session"
	"mastoride/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and resolves the session for
// downstream handlers.
func AuthRequired(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secretKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		sess := &session.Session{
			UserID: claims.UserID,
			Name:   claims.Name,
			Email:  claims.Email,
			Role:   claims.Role,
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		session.Attach(c, sess)

		c.Next()
	}
}

// AdminRequired ensures the resolved session belongs to an admin.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			c.Abort()
			return
		}

		if !sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RiderRequired ensures the resolved session belongs to a rider.
func RiderRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session.FromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
			c.Abort()
			return
		}

		if sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Rider access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
