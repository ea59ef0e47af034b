package models

import "time"

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=2000"`
	ReplyID string `json:"_replyId"`
}

// Comment belongs to exactly one post. Parent fields are a snapshot taken
// when the reply is created and are never re-synced.
type Comment struct {
	ID                  string    `json:"_id"`
	CommentText         string    `json:"commentText"`
	Author              string    `json:"author"`
	ReplyID             string    `json:"_replyId,omitempty"`
	ParentCommentText   string    `json:"parentCommentText,omitempty"`
	ParentCommentAuthor string    `json:"parentCommentAuthor,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (c Comment) IsReply() bool {
	return c.ReplyID != ""
}
