package store

import (
	"context"
	"sync"

	"forum_backend/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps everything in process memory. Posts are returned as copies.
type MemoryStore struct {
	mu    sync.RWMutex
	clock clockwork.Clock
	posts map[string]*models.Post
	order []string
	users map[string]models.User
}

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		clock: clock,
		posts: make(map[string]*models.Post),
		users: make(map[string]models.User),
	}
}

func (s *MemoryStore) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Post, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, copyPost(s.posts[id]))
	}
	return result, nil
}

func (s *MemoryStore) GetPost(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	p := copyPost(post)
	return &p, nil
}

func (s *MemoryStore) CreatePost(_ context.Context, post models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = uuid.New().String()
	post.CreatedAt = s.clock.Now().UTC()
	post.Comments = []models.Comment{}

	stored := copyPost(&post)
	s.posts[post.ID] = &stored
	s.order = append(s.order, post.ID)
	return &post, nil
}

func (s *MemoryStore) AppendComment(_ context.Context, postID string, comment models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return nil, ErrPostNotFound
	}

	comment.ID = uuid.New().String()
	comment.CreatedAt = s.clock.Now().UTC()
	post.Comments = append(post.Comments, comment)

	p := copyPost(post)
	return &p, nil
}

func (s *MemoryStore) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(s.posts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return nil, ErrUserExists
	}
	user.ID = uuid.New().String()
	user.CreatedAt = s.clock.Now().UTC()
	s.users[user.Username] = user
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStore) Ping(_ context.Context) error { return nil }

func (s *MemoryStore) Close(_ context.Context) error { return nil }

func copyPost(p *models.Post) models.Post {
	out := *p
	out.Comments = make([]models.Comment, len(p.Comments))
	copy(out.Comments, p.Comments)
	return out
}
