package routes

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/middleware"
	"mastoride/internal/notify"
)

// SetupWebSocketRoutes sets up the toast push channel
func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *notify.Handler, jwtSecret string) {
	r.GET("/ws", middleware.AuthRequired(jwtSecret), wsHandler.HandleWebSocket)
}
