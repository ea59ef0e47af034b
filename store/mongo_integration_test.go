//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"forum_backend/db"
	"forum_backend/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func TestMongoStore_Contract(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := db.ConnectMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	runStoreContract(t, func(t *testing.T) Store {
		s := NewMongoStore(client, "forum_"+uuid.NewString()[:8], nil)
		require.NoError(t, s.EnsureIndexes(ctx))
		return s
	})

	t.Run("TimestampsFromClock", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
		s := NewMongoStore(client, "forum_"+uuid.NewString()[:8], clock)
		require.NoError(t, s.EnsureIndexes(ctx))

		post, err := s.CreatePost(ctx, models.Post{PostText: "body", Author: "ada"})
		require.NoError(t, err)
		assert.True(t, clock.Now().Equal(post.CreatedAt), "got %s", post.CreatedAt)

		clock.Advance(time.Minute)
		updated, err := s.AppendComment(ctx, post.ID, models.Comment{CommentText: "hi", Author: "bob"})
		require.NoError(t, err)
		require.Len(t, updated.Comments, 1)
		assert.True(t, clock.Now().Equal(updated.Comments[0].CreatedAt), "got %s", updated.Comments[0].CreatedAt)

		fetched, err := s.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, post.CreatedAt.Equal(fetched.CreatedAt), "got %s", fetched.CreatedAt)

		user, err := s.CreateUser(ctx, models.User{Username: "ada", PasswordHash: "x"})
		require.NoError(t, err)
		assert.True(t, clock.Now().Equal(user.CreatedAt), "got %s", user.CreatedAt)
	})
}
