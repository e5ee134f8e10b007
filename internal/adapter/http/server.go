// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"simplyblog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth          *app.AuthService
	posts         *app.PostService
	publicDir     string
	secureCookies bool
	sso           *SSO
}

// New creates a Server wired to the given application services. sso may be
// nil when no identity provider is configured.
func New(auth *app.AuthService, posts *app.PostService, publicDir string, secureCookies bool, sso *SSO) *Server {
	return &Server{
		auth:          auth,
		posts:         posts,
		publicDir:     publicDir,
		secureCookies: secureCookies,
		sso:           sso,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Public routes
	mux.HandleFunc("POST /{$}", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /getposts", s.handleListPosts)
	mux.HandleFunc("GET /viewpost/{id}", s.handleViewPost)
	mux.HandleFunc("PUT /editpost/{id}", s.handleEditPost)
	mux.HandleFunc("DELETE /deletepost/{id}", s.handleDeletePost)
	mux.HandleFunc("GET /getalluserdata", s.handleListUsers)

	// Protected routes
	mux.HandleFunc("GET /home", s.requireAuth(s.handleHome))
	mux.HandleFunc("POST /addpost", s.requireAuth(s.handleAddPost))

	if s.sso != nil {
		mux.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
		mux.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	}

	// Everything else serves the public directory, uploaded images included.
	mux.Handle("/", http.FileServer(http.Dir(s.publicDir)))

	return s.recoverMiddleware(s.loggingMiddleware(mux))
}
