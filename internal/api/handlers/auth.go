package handlers

import (
	"errors"
	"net/http"

	"taskhive-backend/internal/auth"
	apperrors "taskhive-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler handles HTTP requests for registration, login, and sessions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles POST /api/register
// @Summary Register a tenant and its first user
// @Description Create a tenant, its first user, and a basic subscription, then issue a token
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body auth.RegisterRequest true "Registration data"
// @Success 201 {object} auth.AuthResponse "Successfully registered"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrTenantSlugExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "Validation failed",
				"errors":  gin.H{"tenant_slug": err.Error()},
			})
			return
		}
		if errors.Is(err, apperrors.ErrEmailExists) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "Validation failed",
				"errors":  gin.H{"email": err.Error()},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/login
// @Summary Log in to a tenant
// @Description Authenticate a member of a tenant and issue a token scoped to that tenant
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body auth.LoginRequest true "Login credentials with tenant identifier"
// @Success 200 {object} auth.AuthResponse "Successfully logged in"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 404 {object} map[string]interface{} "Tenant not found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": vErrs.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/logout
// @Summary Log out
// @Description Revoke the current token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Successfully logged out"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Security BearerAuth
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	h.authService.Revoke(claims)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me handles GET /api/me
// @Summary Get the current user
// @Description Get the authenticated user together with their tenant memberships
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Current user"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	loaded, err := h.authService.UserWithTenants(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": loaded})
}
