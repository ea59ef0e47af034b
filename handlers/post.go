package handlers

import (
	"net/http"

	"forum_backend/apperrors"
	"forum_backend/forum"
	"forum_backend/middleware"
	"forum_backend/models"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	forum *forum.Service
}

func NewPostHandler(service *forum.Service) *PostHandler {
	return &PostHandler{forum: service}
}

// GetPosts returns every post with its comments.
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.forum.ListPosts(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.forum.GetPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost responds with the new post's id as a JSON string.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, bindError(req.PostText == "", "Cannot use empty question text"))
		return
	}

	post, err := h.forum.CreatePost(c.Request.Context(), c.GetString(middleware.ContextUsername), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post.ID)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	err := h.forum.DeletePost(c.Request.Context(), c.Param("postId"), c.GetString(middleware.ContextUsername))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully removed post."})
}

// bindError maps a body that failed binding to a 400. A missing required
// field gets its own message.
func bindError(missing bool, missingMessage string) error {
	if missing {
		return apperrors.Validation(missingMessage)
	}
	return apperrors.Validation("Invalid request body")
}
