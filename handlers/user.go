package handlers

import (
	"errors"
	"net/http"

	"forum_backend/apperrors"
	"forum_backend/middleware"
	"forum_backend/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GetUserInfo returns the profile of the authenticated user.
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	user, err := h.users.GetUserByUsername(c.Request.Context(), c.GetString(middleware.ContextUsername))
	if errors.Is(err, store.ErrUserNotFound) {
		apperrors.Respond(c, apperrors.NotFound("User not found"))
		return
	} else if err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to fetch user info", err))
		return
	}

	c.JSON(http.StatusOK, user)
}
