package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mastoride/internal/services"
	"mastoride/pkg/logger"
)

// AuthHandler serves the auth surface. Response shapes follow the
// backend contract the dashboard consumes, not the envelope the
// dashboard endpoints use.
type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	userID, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			h.logger.WithError(err).Error("Signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"userId": userID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		default:
			h.logger.WithError(err).Error("Login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, resetToken := h.authService.ForgotPassword(c.Request.Context(), req.Email)

	resp := gin.H{"message": message}
	if resetToken != "" {
		resp["resetToken"] = resetToken
	}
	c.JSON(http.StatusOK, resp)
}
