package routes

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/handlers"
	"mastoride/internal/middleware"
)

// SetupDashboardRoutes sets up the authenticated rider dashboard
func SetupDashboardRoutes(r *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler, jwtSecret string) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthRequired(jwtSecret))
	{
		dashboard.GET("/profile", dashboardHandler.GetProfile)
		dashboard.PUT("/profile", dashboardHandler.SaveProfile)

		dashboard.GET("/settings", dashboardHandler.GetSettings)
		dashboard.PUT("/settings", dashboardHandler.SaveSettings)

		dashboard.GET("/ui", dashboardHandler.GetUIState)
		dashboard.PUT("/ui", dashboardHandler.SaveUIState)

		dashboard.GET("/draft", dashboardHandler.GetDraft)
		dashboard.PATCH("/draft", dashboardHandler.PatchDraft)
		dashboard.POST("/estimate", dashboardHandler.EstimateFare)
		dashboard.POST("/pay", dashboardHandler.Pay)

		dashboard.GET("/history", dashboardHandler.ListHistory)

		dashboard.GET("/badges", dashboardHandler.ListBadges)
		dashboard.POST("/badges/:id/use", dashboardHandler.UseBadge)

		dashboard.GET("/toasts", dashboardHandler.ListToasts)

		dashboard.GET("/preview", dashboardHandler.GetPreview)
		dashboard.POST("/preview", dashboardHandler.UpdatePreview)
	}
}
