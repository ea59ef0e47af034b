package store

import (
	"context"
	"sync"
	"testing"

	"forum_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("CreateAndGetPost", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreatePost(ctx, models.Post{PostSubject: "Hello", PostText: "First post", Author: "ada"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Empty(t, created.Comments)

		fetched, err := s.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", fetched.PostSubject)
		assert.Equal(t, "First post", fetched.PostText)
		assert.Equal(t, "ada", fetched.Author)
		assert.NotNil(t, fetched.Comments)
		assert.Empty(t, fetched.Comments)
	})

	t.Run("GetPostNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetPost(ctx, "65f000000000000000000000")
		assert.ErrorIs(t, err, ErrPostNotFound)
		_, err = s.GetPost(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("ListPostsInCreationOrder", func(t *testing.T) {
		s := newStore(t)

		empty, err := s.ListPosts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		first, err := s.CreatePost(ctx, models.Post{PostText: "one", Author: "ada"})
		require.NoError(t, err)
		second, err := s.CreatePost(ctx, models.Post{PostText: "two", Author: "bob"})
		require.NoError(t, err)
		_, err = s.AppendComment(ctx, second.ID, models.Comment{CommentText: "hi", Author: "ada"})
		require.NoError(t, err)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
		assert.Empty(t, posts[0].Comments)
		require.Len(t, posts[1].Comments, 1)
		assert.Equal(t, "hi", posts[1].Comments[0].CommentText)
	})

	t.Run("AppendCommentKeepsInsertionOrderAndSnapshot", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, models.Post{PostText: "body", Author: "ada"})
		require.NoError(t, err)

		updated, err := s.AppendComment(ctx, post.ID, models.Comment{CommentText: "first", Author: "bob"})
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		parent := updated.Comments[0]
		assert.NotEmpty(t, parent.ID)
		assert.False(t, parent.IsReply())

		updated, err = s.AppendComment(ctx, post.ID, models.Comment{
			CommentText:         "reply",
			Author:              "cyd",
			ReplyID:             parent.ID,
			ParentCommentText:   parent.CommentText,
			ParentCommentAuthor: parent.Author,
		})
		require.NoError(t, err)
		require.Len(t, updated.Comments, 2)
		reply := updated.Comments[1]
		assert.Equal(t, "reply", reply.CommentText)
		assert.Equal(t, parent.ID, reply.ReplyID)
		assert.Equal(t, "first", reply.ParentCommentText)
		assert.Equal(t, "bob", reply.ParentCommentAuthor)

		fetched, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Comments, fetched.Comments)
	})

	t.Run("AppendCommentToMissingPost", func(t *testing.T) {
		s := newStore(t)

		_, err := s.AppendComment(ctx, "65f000000000000000000000", models.Comment{CommentText: "x", Author: "ada"})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("ConcurrentAppendsAreNotLost", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, models.Post{PostText: "busy", Author: "ada"})
		require.NoError(t, err)

		const writers = 10
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.AppendComment(ctx, post.ID, models.Comment{CommentText: "me too", Author: "bob"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		fetched, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, fetched.Comments, writers)
	})

	t.Run("DeletePostRemovesComments", func(t *testing.T) {
		s := newStore(t)

		post, err := s.CreatePost(ctx, models.Post{PostText: "bye", Author: "ada"})
		require.NoError(t, err)
		_, err = s.AppendComment(ctx, post.ID, models.Comment{CommentText: "c", Author: "bob"})
		require.NoError(t, err)

		require.NoError(t, s.DeletePost(ctx, post.ID))

		_, err = s.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
		assert.ErrorIs(t, s.DeletePost(ctx, post.ID), ErrPostNotFound)

		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("Users", func(t *testing.T) {
		s := newStore(t)

		created, err := s.CreateUser(ctx, models.User{Username: "ada", PasswordHash: "hash"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		_, err = s.CreateUser(ctx, models.User{Username: "ada", PasswordHash: "other"})
		assert.ErrorIs(t, err, ErrUserExists)

		fetched, err := s.GetUserByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "hash", fetched.PasswordHash)

		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
