package api

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Account domain.Account `json:"account"`
}

type AuthStatusResponse struct {
	Authenticated bool        `json:"authenticated"`
	UserID        string      `json:"userId"`
	Role          domain.Role `json:"role"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new client
// @Description Creates a client record; the client then appears in the trainer's roster.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} domain.Client "Client created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.authService.RegisterClient(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.Errorf("register client: %s", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, client)
}

// Login godoc
// @Summary Log in
// @Description Authenticates the trainer or a client and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			log.Errorf("login: %s", err)
			abortWithError(c, http.StatusInternalServerError, "Login failed due to an internal error")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Account: *account})
}

// Logout clears the authenticated marker.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		log.Errorf("logout: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Logout failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// Status reports the authenticated marker together with the token identity.
func (h *AuthHandler) Status(c *gin.Context) {
	authenticated, err := h.authService.IsAuthenticated(c.Request.Context())
	if err != nil {
		log.Errorf("read auth status: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to read authentication status")
		return
	}
	userID, _ := getUserIDFromContext(c)
	role, _ := getUserRoleFromContext(c)
	c.JSON(http.StatusOK, AuthStatusResponse{
		Authenticated: authenticated,
		UserID:        userID,
		Role:          role,
	})
}
