package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"forum_backend/models"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	postsCollection = "posts"
	usersCollection = "users"
)

type postDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	PostSubject string             `bson:"postSubject"`
	PostText    string             `bson:"postText"`
	Author      string             `bson:"author"`
	Comments    []commentDocument  `bson:"comments"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type commentDocument struct {
	ID                  primitive.ObjectID  `bson:"_id"`
	CommentText         string              `bson:"commentText"`
	Author              string              `bson:"author"`
	ReplyID             *primitive.ObjectID `bson:"_replyId,omitempty"`
	ParentCommentText   string              `bson:"parentCommentText,omitempty"`
	ParentCommentAuthor string              `bson:"parentCommentAuthor,omitempty"`
	CreatedAt           time.Time           `bson:"createdAt"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// MongoStore keeps each post and its comments in a single document, so a
// comment append is one $push.
type MongoStore struct {
	client *mongo.Client
	posts  *mongo.Collection
	users  *mongo.Collection
	clock  clockwork.Clock
}

// NewMongoStore returns a store over the named database. A nil clock uses
// wall time.
func NewMongoStore(client *mongo.Client, database string, clock clockwork.Clock) *MongoStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	db := client.Database(database)
	return &MongoStore{
		client: client,
		posts:  db.Collection(postsCollection),
		users:  db.Collection(usersCollection),
		clock:  clock,
	}
}

// now is millisecond precision, matching what BSON dates store.
func (s *MongoStore) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// EnsureIndexes creates the unique username index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (s *MongoStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toModel())
	}
	return posts, nil
}

func (s *MongoStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var doc postDocument
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	post := doc.toModel()
	return &post, nil
}

func (s *MongoStore) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	doc := postDocument{
		ID:          primitive.NewObjectID(),
		PostSubject: post.PostSubject,
		PostText:    post.PostText,
		Author:      post.Author,
		Comments:    []commentDocument{},
		CreatedAt:   s.now(),
	}
	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	created := doc.toModel()
	return &created, nil
}

func (s *MongoStore) AppendComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	doc := commentDocument{
		ID:                  primitive.NewObjectID(),
		CommentText:         comment.CommentText,
		Author:              comment.Author,
		ParentCommentText:   comment.ParentCommentText,
		ParentCommentAuthor: comment.ParentCommentAuthor,
		CreatedAt:           s.now(),
	}
	if comment.IsReply() {
		replyID, err := primitive.ObjectIDFromHex(comment.ReplyID)
		if err != nil {
			return nil, fmt.Errorf("reply id %q: %w", comment.ReplyID, err)
		}
		doc.ReplyID = &replyID
	}

	var updated postDocument
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"comments": doc}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("push comment to post %s: %w", postID, err)
	}
	post := updated.toModel()
	return &post, nil
}

func (s *MongoStore) DeletePost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPostNotFound
	}

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    s.now(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	created := doc.toModel()
	return &created, nil
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := doc.toModel()
	return &user, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d postDocument) toModel() models.Post {
	post := models.Post{
		ID:          d.ID.Hex(),
		PostSubject: d.PostSubject,
		PostText:    d.PostText,
		Author:      d.Author,
		Comments:    make([]models.Comment, 0, len(d.Comments)),
		CreatedAt:   d.CreatedAt,
	}
	for _, c := range d.Comments {
		post.Comments = append(post.Comments, c.toModel())
	}
	return post
}

func (d commentDocument) toModel() models.Comment {
	comment := models.Comment{
		ID:                  d.ID.Hex(),
		CommentText:         d.CommentText,
		Author:              d.Author,
		ParentCommentText:   d.ParentCommentText,
		ParentCommentAuthor: d.ParentCommentAuthor,
		CreatedAt:           d.CreatedAt,
	}
	if d.ReplyID != nil {
		comment.ReplyID = d.ReplyID.Hex()
	}
	return comment
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}
