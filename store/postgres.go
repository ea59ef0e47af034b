package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"forum_backend/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// PostgresStore keeps comments in their own table; deleting a post cascades.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, post_subject, post_text, author, created_at
        FROM posts
        ORDER BY created_at ASC, id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	index := make(map[string]int)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.PostSubject, &post.PostText, &post.Author, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		post.Comments = []models.Comment{}
		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	comments, err := s.queryComments(ctx, `WHERE post_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		i := index[c.postID]
		posts[i].Comments = append(posts[i].Comments, c.Comment)
	}
	return posts, nil
}

func (s *PostgresStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.db.QueryRowContext(ctx, `
        SELECT id, post_subject, post_text, author, created_at
        FROM posts
        WHERE id = $1
    `, id).Scan(&post.ID, &post.PostSubject, &post.PostText, &post.Author, &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	} else if err != nil {
		return nil, fmt.Errorf("query post %s: %w", id, err)
	}

	comments, err := s.queryComments(ctx, `WHERE post_id = $1`, id)
	if err != nil {
		return nil, err
	}
	post.Comments = make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		post.Comments = append(post.Comments, c.Comment)
	}
	return &post, nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	post.ID = uuid.New().String()
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO posts (id, post_subject, post_text, author)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `, post.ID, post.PostSubject, post.PostText, post.Author).Scan(&post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	post.Comments = []models.Comment{}
	return &post, nil
}

func (s *PostgresStore) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	comment.ID = uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO comments (id, post_id, comment_text, author, reply_id, parent_comment_text, parent_comment_author)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, comment.ID, postID, comment.CommentText, comment.Author,
		nullString(comment.ReplyID), nullString(comment.ParentCommentText), nullString(comment.ParentCommentAuthor))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return s.GetPost(ctx, postID)
}

func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New().String()
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO users (id, username, password_hash)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `, user.ID, user.Username, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, created_at
        FROM users
        WHERE username = $1
    `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	return s.db.Close()
}

type postComment struct {
	models.Comment
	postID string
}

func (s *PostgresStore) queryComments(ctx context.Context, where string, args ...any) ([]postComment, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT post_id, id, comment_text, author, reply_id, parent_comment_text, parent_comment_author, created_at
        FROM comments
        `+where+`
        ORDER BY post_id, seq ASC
    `, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []postComment
	for rows.Next() {
		var c postComment
		var replyID, parentText, parentAuthor sql.NullString
		err := rows.Scan(
			&c.postID,
			&c.ID,
			&c.CommentText,
			&c.Author,
			&replyID,
			&parentText,
			&parentAuthor,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.ReplyID = replyID.String
		c.ParentCommentText = parentText.String
		c.ParentCommentAuthor = parentAuthor.String
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
