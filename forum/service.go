package forum

import (
	"context"
	"errors"

	"forum_backend/apperrors"
	"forum_backend/logging"
	"forum_backend/metrics"
	"forum_backend/models"
	"forum_backend/moderation"
	"forum_backend/store"
)

// Service orchestrates the post lifecycle. It holds no per-request state.
type Service struct {
	posts   store.PostStore
	gate    *moderation.Gate
	metrics *metrics.ForumMetrics
}

func NewService(posts store.PostStore, gate *moderation.Gate, m *metrics.ForumMetrics) *Service {
	return &Service{posts: posts, gate: gate, metrics: m}
}

func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, apperrors.Internal("Questions Cannot Load", err)
	}
	return posts, nil
}

func (s *Service) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if errors.Is(err, store.ErrPostNotFound) {
		return nil, apperrors.NotFound("Question not found")
	} else if err != nil {
		return nil, apperrors.Internal("Error fetching question", err)
	}
	return post, nil
}

// CreatePost screens subject and body and stores a new post with no comments.
func (s *Service) CreatePost(ctx context.Context, author string, req models.CreatePostRequest) (*models.Post, error) {
	if req.PostText == "" {
		return nil, apperrors.Validation("Cannot use empty question text")
	}
	if author == "" {
		return nil, apperrors.Forbidden("No author found in session")
	}

	if err := s.gate.ScreenPost(ctx, req.PostSubject, req.PostText); err != nil {
		return nil, s.moderationError("post", err, "Error handling adding question")
	}

	post, err := s.posts.CreatePost(ctx, models.Post{
		PostSubject: req.PostSubject,
		PostText:    req.PostText,
		Author:      author,
	})
	if err != nil {
		return nil, apperrors.Internal("Error handling adding question", err)
	}

	s.metrics.PostCreated()
	logging.WithPost(post.ID).Info("post created", "author", author)
	return post, nil
}

// AddComment screens the comment, resolves an optional reply target and
// appends the comment to the post. It returns the updated post.
func (s *Service) AddComment(ctx context.Context, postID, author string, req models.AddCommentRequest) (*models.Post, error) {
	if req.Comment == "" {
		return nil, apperrors.Validation("Comment text must be provided")
	}
	if author == "" {
		return nil, apperrors.Forbidden("No author found in session")
	}

	if err := s.gate.CheckProfanity(moderation.RequireAny, req.Comment); err != nil {
		return nil, s.moderationError("comment", err, "Server error updating the answer")
	}

	post, err := s.posts.GetPost(ctx, postID)
	if errors.Is(err, store.ErrPostNotFound) {
		return nil, apperrors.NotFound("Post not found")
	} else if err != nil {
		return nil, apperrors.Internal("Server error updating the answer", err)
	}

	if err := s.gate.CheckSentiment(ctx, req.Comment); err != nil {
		return nil, s.moderationError("comment", err, "Server error updating the answer")
	}

	comment, err := BuildComment(post, req.Comment, author, req.ReplyID)
	if errors.Is(err, ErrReplyTargetNotFound) {
		return nil, apperrors.NotFound("Reply comment not found")
	} else if err != nil {
		return nil, apperrors.Internal("Server error updating the answer", err)
	}

	updated, err := s.posts.AppendComment(ctx, postID, comment)
	if errors.Is(err, store.ErrPostNotFound) {
		return nil, apperrors.NotFound("Post not found")
	} else if err != nil {
		return nil, apperrors.Internal("Server error updating the answer", err)
	}

	s.metrics.CommentAdded(comment.IsReply())
	logging.WithPost(postID).Debug("comment appended", "author", author, "reply", comment.IsReply())
	return updated, nil
}

// DeletePost removes the post and its comments. Only the author may delete.
func (s *Service) DeletePost(ctx context.Context, postID, requester string) error {
	post, err := s.posts.GetPost(ctx, postID)
	if errors.Is(err, store.ErrPostNotFound) {
		return apperrors.NotFound("Could not find post.")
	} else if err != nil {
		return apperrors.Internal("Internal server error.", err)
	}

	if requester == "" || requester != post.Author {
		logging.WithAuthor(requester).Warn("delete refused", "post_id", postID)
		return apperrors.Forbidden("You do not have permission to delete this post.")
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return apperrors.NotFound("Could not find post.")
		}
		return apperrors.Internal("Internal server error.", err)
	}

	s.metrics.PostDeleted()
	logging.WithPost(postID).Info("post deleted", "author", requester)
	return nil
}

func (s *Service) moderationError(target string, err error, internalMessage string) error {
	if !moderation.IsRejection(err) {
		return apperrors.Internal(internalMessage, err)
	}

	s.metrics.Rejected(target, moderation.Reason(err))
	if errors.Is(err, moderation.ErrProfanity) {
		return apperrors.Moderation("Use of profanity is not allowed", err)
	}
	return apperrors.Moderation("Negative sentiments are not allowed", err)
}
