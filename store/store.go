// Package store persists posts, their comments, and forum users.
//
// Every backend treats a post and its comments as one unit: appending a comment
// and deleting a post are each a single atomic operation on that unit.
package store

import (
	"context"
	"errors"

	"forum_backend/models"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already taken")
)

// PostStore is implemented by the in-memory, MongoDB and PostgreSQL backends.
type PostStore interface {
	// ListPosts returns every post in creation order.
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	// CreatePost assigns the id and creation time and stores the post with no comments.
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	// AppendComment assigns the comment id and creation time, appends it to the
	// post and returns the updated post.
	AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	// DeletePost removes the post together with its comments.
	DeletePost(ctx context.Context, id string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Store is a complete backend.
type Store interface {
	PostStore
	UserStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
