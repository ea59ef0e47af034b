package models

import "time"

type CreatePostRequest struct {
	PostSubject string `json:"postSubject" binding:"max=300"`
	PostText    string `json:"postText" binding:"required,max=20000"`
}

// Post is a top-level forum entry. Comments are kept in insertion order.
type Post struct {
	ID          string    `json:"_id"`
	PostSubject string    `json:"postSubject"`
	PostText    string    `json:"postText"`
	Author      string    `json:"author"` // username of the post creator
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FindComment returns the comment with the given id, compared as strings.
func (p *Post) FindComment(id string) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}
