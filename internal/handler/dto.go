package handler

import (
	"time"

	"github.com/mireles/inkwell/internal/domain"
)

// AuthorDTO is the public author info embedded in a post.
type AuthorDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommentDTO is the JSON representation of a comment.
type CommentDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Author    AuthorDTO    `json:"author"`
	Likes     []string     `json:"likes"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}

	comments := make([]CommentDTO, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = CommentDTO{
			ID:        c.ID,
			UserID:    c.AuthorID,
			Comment:   c.Text,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}

	return PostDTO{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author: AuthorDTO{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Email: p.Author.Email,
		},
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}
