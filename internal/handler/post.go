package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mireles/inkwell/internal/domain"
	"github.com/mireles/inkwell/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleCreate creates a new post authored by the caller.
// POST /posts/create
// Request:  {"title":"...","content":"..."}
// Response: 201, post
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.posts.Create(r.Context(), UserIDFromContext(r.Context()), req.Title, req.Content)
	if err != nil {
		h.respondError(w, err, "create post")
		return
	}

	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

// HandleList returns a page of posts, newest first.
// GET /posts?page=1&limit=10
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	posts, err := h.posts.List(r.Context(), page, limit)
	if err != nil {
		h.respondError(w, err, "list posts")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleListByAuthor returns a page of posts by one author, newest first.
// GET /posts/author/{authorId}?page=1&limit=10
func (h *PostHandler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	posts, err := h.posts.ListByAuthor(r.Context(), r.PathValue("authorId"), page, limit)
	if err != nil {
		h.respondError(w, err, "list posts by author")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleListByPopularity returns all posts ordered by descending like count.
// GET /posts/popularity
func (h *PostHandler) HandleListByPopularity(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByPopularity(r.Context())
	if err != nil {
		h.respondError(w, err, "list posts by popularity")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleUpdate replaces the provided fields of a post. Author only.
// PUT /posts/{postId}
// Request:  {"title":"...","content":"..."} (both optional)
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.posts.Update(r.Context(), UserIDFromContext(r.Context()), r.PathValue("postId"), req.Title, req.Content)
	if err != nil {
		h.respondError(w, err, "update post")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleDelete removes a post. Author only.
// DELETE /posts/{postId}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.posts.Delete(r.Context(), UserIDFromContext(r.Context()), r.PathValue("postId"))
	if err != nil {
		h.respondError(w, err, "delete post")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// HandleLike toggles the caller's like on a post.
// POST /posts/{postId}/like
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.ToggleLike(r.Context(), UserIDFromContext(r.Context()), r.PathValue("postId"))
	if err != nil {
		h.respondError(w, err, "like post")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleComment appends a comment to a post. The comment is attributed to
// the user ID supplied in the body when present, otherwise to the caller.
// POST /posts/{postId}/comment
// Request:  {"commentAuthorId":"...","comment":"..."}
func (h *PostHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CommentAuthorID string `json:"commentAuthorId"`
		Comment         string `json:"comment"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authorID := req.CommentAuthorID
	if authorID == "" {
		authorID = UserIDFromContext(r.Context())
	}

	post, err := h.posts.AddComment(r.Context(), r.PathValue("postId"), authorID, req.Comment)
	if err != nil {
		h.respondError(w, err, "add comment")
		return
	}

	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// respondError maps service errors onto the HTTP error taxonomy. Store and
// unexpected failures are logged server-side and surfaced as a generic 500.
func (h *PostHandler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized to modify this post")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func pageParams(r *http.Request) (page, limit int) {
	// Missing or malformed values fall back to the service defaults.
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
