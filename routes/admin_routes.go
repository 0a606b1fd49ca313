package routes

import (
	"github.com/gin-gonic/gin"

	"mastoride/internal/handlers"
	"mastoride/internal/middleware"
)

// SetupAdminRoutes sets up the admin surface. The POST and PUT on
// /users are the repurposed booking-create/update endpoints and stay
// open so the booking synchronizer can reach them; everything else
// requires an admin session.
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, jwtSecret string) {
	admin := r.Group("/admin")
	{
		admin.POST("/users", adminHandler.CreateBooking)
		admin.PUT("/users/:id", adminHandler.UpdateBooking)

		gated := admin.Group("")
		gated.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
		{
			gated.GET("/users", adminHandler.ListUsers)
			gated.DELETE("/users/:id", adminHandler.DeleteUser)
			gated.GET("/monthly-rides", adminHandler.MonthlyRides)
			gated.GET("/ride-types", adminHandler.RideTypes)
		}
	}
}
