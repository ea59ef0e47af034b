package db

import (
	"context"
	"database/sql"
	"fmt"
)

const Schema = `
-- Create users table
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Create posts table
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    post_subject TEXT NOT NULL DEFAULT '',
    post_text TEXT NOT NULL,
    author VARCHAR(50) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Create comments table; seq keeps insertion order within a post
CREATE TABLE IF NOT EXISTS comments (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    post_id TEXT NOT NULL,
    comment_text TEXT NOT NULL,
    author VARCHAR(50) NOT NULL,
    reply_id TEXT,
    parent_comment_text TEXT,
    parent_comment_author VARCHAR(50),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS comments_post_seq_idx ON comments (post_id, seq);
`

// InitSchema initializes the database schema
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("error initializing database schema: %w", err)
	}
	return nil
}
