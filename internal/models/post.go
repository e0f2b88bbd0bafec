package models

import (
	"strings"
	"time"

	"github.com/nmalet/blog-backend/internal/apperr"
)

// Post content is opaque rich text; the backend stores and serves it
// without interpretation. Author and CreatedAt are immutable after
// creation.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"-"`
	Author    AuthorRef `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Comments  []Comment `json:"comments,omitempty"`
}

func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return apperr.ErrInvalidInput
	}
	return nil
}

// Comment lives inside its post: it is never addressable on its own and
// is deleted with the post. Display order is insertion order.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    AuthorRef `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
