package forum

import (
	"errors"

	"forum_backend/models"
)

var ErrReplyTargetNotFound = errors.New("reply target not found")

// BuildComment constructs the comment to append to post. When replyID is set
// the target must already be one of the post's comments; its text and author
// are copied into the new comment as a snapshot.
func BuildComment(post *models.Post, text, author, replyID string) (models.Comment, error) {
	comment := models.Comment{
		CommentText: text,
		Author:      author,
	}
	if replyID == "" {
		return comment, nil
	}

	target, ok := post.FindComment(replyID)
	if !ok {
		return models.Comment{}, ErrReplyTargetNotFound
	}
	comment.ReplyID = target.ID
	comment.ParentCommentText = target.CommentText
	comment.ParentCommentAuthor = target.Author
	return comment, nil
}
