package service

import (
	"context"
	"fmt"

	"github.com/mireles/inkwell/internal/domain"
)

// Pagination defaults for post listings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PostService handles post CRUD, like toggling, comments, and listings.
// Ownership is enforced on mutation: only the author may update or
// delete a post.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Create creates a new post authored by callerID.
func (s *PostService) Create(ctx context.Context, callerID, title, content string) (*domain.Post, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}
	if callerID == "" {
		return nil, fmt.Errorf("%w: user ID is missing", domain.ErrInvalidInput)
	}

	post := &domain.Post{
		Title:    title,
		Content:  content,
		AuthorID: callerID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.posts.GetByID(ctx, post.ID)
}

// GetByID returns a single post with its likes and comments.
func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns a page of posts, newest first. Non-positive page or limit
// values fall back to the defaults.
func (s *PostService) List(ctx context.Context, page, limit int) ([]domain.Post, error) {
	limit, offset := normalizePage(page, limit)
	return s.posts.List(ctx, limit, offset)
}

// ListByAuthor returns a page of posts by a single author, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string, page, limit int) ([]domain.Post, error) {
	limit, offset := normalizePage(page, limit)
	return s.posts.ListByAuthor(ctx, authorID, limit, offset)
}

// ListByPopularity returns all posts ordered by descending like count.
func (s *PostService) ListByPopularity(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListByPopularity(ctx)
}

// Update replaces the provided fields of a post; empty title or content
// keeps the prior value. Only the post's author may update it.
func (s *PostService) Update(ctx context.Context, callerID, postID, title, content string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, domain.ErrForbidden
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post. Only the post's author may delete it.
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return domain.ErrForbidden
	}

	return s.posts.Delete(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's like set and
// returns the updated post.
func (s *PostService) ToggleLike(ctx context.Context, callerID, postID string) (*domain.Post, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.posts.ToggleLike(ctx, postID, callerID); err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	return s.posts.GetByID(ctx, postID)
}

// AddComment appends a comment to a post and returns the updated post.
func (s *PostService) AddComment(ctx context.Context, postID, authorID, text string) (*domain.Post, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", domain.ErrInvalidInput)
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	return s.posts.GetByID(ctx, postID)
}

func normalizePage(page, limit int) (normalizedLimit, offset int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return limit, (page - 1) * limit
}
