package handlers

import (
	"net/http"

	"forum_backend/apperrors"
	"forum_backend/forum"
	"forum_backend/middleware"
	"forum_backend/models"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	forum *forum.Service
}

func NewCommentHandler(service *forum.Service) *CommentHandler {
	return &CommentHandler{forum: service}
}

// AddComment appends a comment, or a reply when _replyId is set, and responds
// with the updated post.
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, bindError(req.Comment == "", "Comment text must be provided"))
		return
	}

	post, err := h.forum.AddComment(c.Request.Context(), c.Param("postId"), c.GetString(middleware.ContextUsername), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
