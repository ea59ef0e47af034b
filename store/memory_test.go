package store

import (
	"context"
	"testing"
	"time"

	"forum_backend/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore(nil)
	})
}

func TestMemoryStore_UsesClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	s := NewMemoryStore(clock)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, models.Post{PostText: "body", Author: "ada"})
	require.NoError(t, err)
	assert.Equal(t, start, post.CreatedAt)

	clock.Advance(time.Minute)
	updated, err := s.AppendComment(ctx, post.ID, models.Comment{CommentText: "hi", Author: "bob"})
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Minute), updated.Comments[0].CreatedAt)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, models.Post{PostText: "body", Author: "ada"})
	require.NoError(t, err)
	updated, err := s.AppendComment(ctx, post.ID, models.Comment{CommentText: "hi", Author: "bob"})
	require.NoError(t, err)

	updated.Comments[0].CommentText = "edited"
	updated.Comments = append(updated.Comments, models.Comment{CommentText: "sneaky"})

	fetched, err := s.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Comments, 1)
	assert.Equal(t, "hi", fetched.Comments[0].CommentText)
}
