package store

import (
	"context"
	"fmt"

	"forum_backend/models"
)

// SeedAuthor owns the seeded posts.
const SeedAuthor = "forum-team"

var seedPosts = []models.Post{
	{
		PostSubject: "Welcome to the forum",
		PostText:    "Ask a question, share what you know and be kind to each other.",
	},
	{
		PostSubject: "How replies work",
		PostText:    "Reply to any comment and your answer will quote the comment you replied to.",
	},
}

// SeedData populates an empty store with introductory posts. A store that
// already holds posts is left untouched.
func SeedData(ctx context.Context, posts PostStore) (int, error) {
	existing, err := posts.ListPosts(ctx)
	if err != nil {
		return 0, fmt.Errorf("error checking existing posts: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, p := range seedPosts {
		p.Author = SeedAuthor
		if _, err := posts.CreatePost(ctx, p); err != nil {
			return i, fmt.Errorf("error seeding posts: %w", err)
		}
	}
	return len(seedPosts), nil
}
