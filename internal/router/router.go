// Package router sets up all HTTP routes and middleware chains for the
// blog API. It organizes routes into public and authenticated groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/auth"
	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Posts      *handlers.PostHandler
	Categories *handlers.CategoryHandler
	Comments   *handlers.CommentHandler
	Media      *handlers.MediaHandler
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.TokenService, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(middleware.RequireAuth(tokens)).Get("/profile", h.Auth.Profile)
		})

		// Posts
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.Posts.List)
			r.Get("/slug/{slug}", h.Posts.GetBySlug)
			r.Get("/{id}", h.Posts.GetByID)

			// Comments live under their post. Submission accepts guests;
			// a valid token only enriches attribution.
			r.Get("/{id}/comments", h.Comments.ListByPost)
			r.With(middleware.OptionalAuth(tokens)).Post("/{id}/comments", h.Comments.Create)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Post("/create", h.Posts.Create)
				r.Put("/{id}", h.Posts.Update)
				r.Delete("/{id}", h.Posts.Delete)
			})
		})

		// Categories — public reads, admin writes.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Categories.List)
			r.Get("/{id}", h.Categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", h.Categories.Create)
				r.Put("/{id}", h.Categories.Update)
				r.Delete("/{id}", h.Categories.Delete)
			})
		})

		// Comment moderation — admin only.
		r.Route("/comments", func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Put("/{id}/status", h.Comments.Moderate)
			r.Delete("/{id}", h.Comments.Delete)
		})

		// Media — any authenticated user may upload and browse; deletion
		// is admin only.
		r.Route("/media", func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/", h.Media.Upload)
			r.Get("/", h.Media.List)
			r.Get("/{id}", h.Media.Get)
			r.With(middleware.RequireRole(models.RoleAdmin)).Delete("/{id}", h.Media.Delete)
		})
	})

	return r
}

// healthHandler responds with a simple OK for load balancer health checks.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
