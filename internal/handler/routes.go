package handler

import (
	"net/http"

	"github.com/mireles/inkwell/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Mutating post
// routes are wrapped in RequireAuth so identity resolution always runs
// before the handler.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, posts *service.PostService) {
	authHandler := NewAuthHandler(auth)
	postHandler := NewPostHandler(posts)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", authHandler.HandleLogin)

	mux.HandleFunc("GET /posts", postHandler.HandleList)
	mux.HandleFunc("GET /posts/popularity", postHandler.HandleListByPopularity)
	mux.HandleFunc("GET /posts/author/{authorId}", postHandler.HandleListByAuthor)

	mux.Handle("POST /posts/create", RequireAuth(auth, http.HandlerFunc(postHandler.HandleCreate)))
	mux.Handle("PUT /posts/{postId}", RequireAuth(auth, http.HandlerFunc(postHandler.HandleUpdate)))
	mux.Handle("DELETE /posts/{postId}", RequireAuth(auth, http.HandlerFunc(postHandler.HandleDelete)))
	mux.Handle("POST /posts/{postId}/like", RequireAuth(auth, http.HandlerFunc(postHandler.HandleLike)))
	mux.Handle("POST /posts/{postId}/comment", RequireAuth(auth, http.HandlerFunc(postHandler.HandleComment)))
}
