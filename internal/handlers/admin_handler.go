package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mastoride/internal/models"
	"mastoride/internal/services"
	"mastoride/internal/validators"
	"mastoride/pkg/logger"
)

// AdminHandler serves the admin surface. Shapes are part of the
// backend contract: flat `{success, ...}` objects, not the envelope.
type AdminHandler struct {
	adminService services.AdminService
	logger       *logger.Logger
}

func NewAdminHandler(adminService services.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       log,
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load users"})
		return
	}
	if users == nil {
		users = []*models.PublicUser{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.adminService.DeleteUser(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MonthlyRides handles GET /api/admin/monthly-rides
func (h *AdminHandler) MonthlyRides(c *gin.Context) {
	data, err := h.adminService.MonthlyRides(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate monthly rides")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load monthly rides"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  data.Labels,
		"counts":  data.Counts,
	})
}

// RideTypes handles GET /api/admin/ride-types
func (h *AdminHandler) RideTypes(c *gin.Context) {
	data, err := h.adminService.RideTypes(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to aggregate ride types")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load ride types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"labels":  data.Labels,
		"data":    data.Data,
		"colors":  data.Colors,
	})
}

// CreateBooking handles POST /api/admin/users, which the contract
// repurposes as booking-create. The synchronizer is its main caller.
func (h *AdminHandler) CreateBooking(c *gin.Context) {
	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if verrs := validators.ValidateStruct(&req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verrs.Error(), "fields": verrs.Fields()})
		return
	}

	record, err := h.adminService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": record})
}

// UpdateBooking handles PUT /api/admin/users/:id, the repurposed
// booking-update.
func (h *AdminHandler) UpdateBooking(c *gin.Context) {
	var req models.BookingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	err := h.adminService.UpdateBooking(c.Request.Context(), c.Param("id"), &req)
	if errors.Is(err, services.ErrBookingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Booking not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update booking")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
