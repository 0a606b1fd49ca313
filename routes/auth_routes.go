package routes

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/handlers"
)

// SetupAuthRoutes sets up the public authentication routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
	}
}
