package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avertech/teamboard-backend/internal/service"
	"github.com/avertech/teamboard-backend/pkg/models"
)

// AuthHandler handles signup, login and token lifecycle
type AuthHandler struct {
	authService service.AuthService
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		logAPIError(c, "Auth.Signup", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, refreshToken, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logAPIError(c, "Auth.Login", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		Role:         user.Role,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, refreshToken, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logAPIError(c, "Auth.Refresh", err)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.LogoutRequest
	// A logout without a refresh token still succeeds; there is just
	// nothing to revoke.
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
			logAPIError(c, "Auth.Logout", err)
			handleServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
