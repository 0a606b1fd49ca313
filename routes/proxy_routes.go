package routes

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/handlers"
)

// SetupProxyRoutes sets up the catch-all backend pass-through
func SetupProxyRoutes(r *gin.Engine, proxyHandler *handlers.ProxyHandler) {
	r.Any("/proxy/*path", proxyHandler.Forward)
}
