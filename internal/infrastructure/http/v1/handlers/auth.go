package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/appctx"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/domain/auth"
	"github.com/mhammadjaber00/almasasuite/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login and staff management endpoints.
type AuthHandler struct {
	*BaseHandler
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(),
		authService: authService,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), auth.Credentials{
		Username: req.Username,
		Pin:      req.Pin,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        dto.FromUser(user),
	})
}

// CreateUser handles POST /users (manager only).
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Username, req.Name, req.Role, req.Pin)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromUser(user))
}

// ListUsers handles GET /users (manager only).
func (h *AuthHandler) ListUsers(c *gin.Context) {
	activeOnly := c.DefaultQuery("activeOnly", "true") == "true"

	users, err := h.authService.ListUsers(c.Request.Context(), activeOnly)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUsers(users))
}

// ChangePin handles POST /users/me/pin.
func (h *AuthHandler) ChangePin(c *gin.Context) {
	var req dto.ChangePinRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	userID, err := id.Parse(user.UserID)
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("invalid user identity"))
		return
	}

	if err := h.authService.ChangePin(c.Request.Context(), userID, req.CurrentPin, req.NewPin); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "pin changed")
}

// DeactivateUser handles DELETE /users/:id (manager only).
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.authService.DeactivateUser(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
