package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"forum_backend/apperrors"
	"forum_backend/middleware"
	"forum_backend/models"
	"forum_backend/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users        store.UserStore
	tokenService *middleware.TokenService
}

func NewAuthHandler(users store.UserStore, tokens *middleware.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokenService: tokens}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Username (3-50 characters) and password (at least 8 characters) are required"))
		return
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to process password", err))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	})
	if errors.Is(err, store.ErrUserExists) {
		apperrors.Respond(c, apperrors.Conflict("Username already taken"))
		return
	} else if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to create user", err))
		return
	}

	token, err := h.tokenService.GenerateToken(user.Username)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to generate token", err))
		return
	}

	slog.Info("User registered", "author", user.Username)
	c.JSON(http.StatusCreated, models.AuthResponse{AccessToken: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.Validation("Username and password are required"))
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrUserNotFound) || (err == nil && !middleware.VerifyPassword(user.PasswordHash, req.Password)) {
		apperrors.Respond(c, apperrors.Unauthorized("Invalid credentials"))
		return
	} else if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to verify credentials", err))
		return
	}

	token, err := h.tokenService.GenerateToken(user.Username)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{AccessToken: token})
}
