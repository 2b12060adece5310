package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mireles/inkwell/internal/domain"
)

// PostRepository implements domain.PostRepository using SQLite.
type PostRepository struct {
	db *sql.DB
}

const postColumns = `p.id, p.title, p.content, p.author_id, u.name, u.email, p.created_at, p.updated_at`

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, author_id, title, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, post.AuthorID, post.Title, post.Content, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	p := &domain.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Author.Name, &p.Author.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query post: %w", err)
	}
	p.Author.ID = p.AuthorID

	if err := r.loadLikesAndComments(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return r.collectPosts(ctx, rows)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p JOIN users u ON u.id = p.author_id
		 WHERE p.author_id = ?
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT ? OFFSET ?`, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return r.collectPosts(ctx, rows)
}

func (r *PostRepository) ListByPopularity(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+`
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 LEFT JOIN post_likes l ON l.post_id = p.id
		 GROUP BY p.id
		 ORDER BY COUNT(l.user_id) DESC, p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts by popularity: %w", err)
	}
	return r.collectPosts(ctx, rows)
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		post.Title, post.Content, now, post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	post.UpdatedAt = now
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleLike flips userID's membership in the post's like set inside a
// single transaction: delete the row, and insert it if nothing was
// deleted. The (post_id, user_id) primary key caps likes at one per user.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM post_likes WHERE post_id = ? AND user_id = ?", postID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO post_likes (post_id, user_id, created_at) VALUES (?, ?, ?)",
			postID, userID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("add like: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO post_comments (id, post_id, author_id, comment, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, comment.PostID, comment.AuthorID, comment.Text, now,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = now
	return nil
}

func (r *PostRepository) collectPosts(ctx context.Context, rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID,
			&p.Author.Name, &p.Author.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Author.ID = p.AuthorID
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		if err := r.loadLikesAndComments(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *PostRepository) loadLikesAndComments(ctx context.Context, p *domain.Post) error {
	likeRows, err := r.db.QueryContext(ctx,
		"SELECT user_id FROM post_likes WHERE post_id = ? ORDER BY created_at, user_id", p.ID)
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var userID string
		if err := likeRows.Scan(&userID); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		p.Likes = append(p.Likes, userID)
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	commentRows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, comment, created_at
		 FROM post_comments WHERE post_id = ? ORDER BY created_at, id`, p.ID)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var c domain.Comment
		if err := commentRows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		p.Comments = append(p.Comments, c)
	}
	return commentRows.Err()
}
