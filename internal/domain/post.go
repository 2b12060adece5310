package domain

import (
	"context"
	"time"
)

// Author is the public subset of a user embedded in post listings.
// The password hash never travels with a post.
type Author struct {
	ID    string
	Name  string
	Email string
}

// Comment is a single comment appended to a post. Comments are
// append-only and ordered by creation time.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

// Post represents a blog post. AuthorID is set once at creation and
// never changes; only the author may update or delete the post.
type Post struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	Author    Author
	Likes     []string
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikeCount returns the number of distinct users who like the post.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// PostRepository defines persistence operations for posts, their like
// sets, and their comments.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Post, error)
	ListByPopularity(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	// ToggleLike atomically adds userID to the post's like set if absent,
	// or removes it if present. Concurrent toggles serialize at the store.
	ToggleLike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, comment *Comment) error
}
