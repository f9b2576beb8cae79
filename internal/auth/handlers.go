package auth

import (
	"errors"
	"net/http"

	apperrors "makeitall-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service *AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest represents the credential login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Profile     Identity `json:"profile"`
}

// Login handles POST /api/auth/login
// @Summary Log in with email and password
// @Description Verifies credentials and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Session token"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, identity, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Profile:     *identity,
	})
}

// Me handles GET /api/v1/me
// @Summary Current session identity
// @Description Returns the identity attached to the session token
// @Tags auth
// @Produce json
// @Success 200 {object} Identity "Current user"
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Security BearerAuth
// @Router /api/v1/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, identity)
}
