package store

import (
	"context"

	"forum_backend/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of Store for handler and service tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *MockStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	created, _ := args.Get(0).(*models.Post)
	return created, args.Error(1)
}

func (m *MockStore) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	args := m.Called(ctx, postID, comment)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockStore) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
