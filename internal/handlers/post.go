// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PostHandler serves the post CRUD and listing endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// postBody is the JSON shape shared by create and update requests. Pointers
// distinguish "absent" from "set to zero" on update.
type postBody struct {
	Title          *string            `json:"title"`
	Content        *string            `json:"content"`
	Slug           *string            `json:"slug"`
	Excerpt        *string            `json:"excerpt"`
	FeaturedImage  *string            `json:"featuredImage"`
	Tags           []string           `json:"tags"`
	Status         *models.PostStatus `json:"status"`
	CommentEnabled *bool              `json:"commentEnabled"`
	Categories     []string           `json:"categories"`
	SEO            *models.SEO        `json:"seo"`
}

// Create handles POST /api/posts/create. Requires authentication.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postBody
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	title := deref(req.Title)
	content := deref(req.Content)
	if strings.TrimSpace(title) == "" {
		respondBadRequest(w, r, "title is required")
		return
	}
	if strings.TrimSpace(content) == "" {
		respondBadRequest(w, r, "content is required")
		return
	}

	identity := middleware.IdentityFromCtx(r.Context())
	in := service.CreatePostInput{
		Title:          title,
		Content:        content,
		Slug:           deref(req.Slug),
		Excerpt:        deref(req.Excerpt),
		FeaturedImage:  deref(req.FeaturedImage),
		Tags:           req.Tags,
		CommentEnabled: req.CommentEnabled,
		Categories:     req.Categories,
		SEO:            req.SEO,
	}
	if req.Status != nil {
		in.Status = *req.Status
	}

	post, err := h.posts.Create(r.Context(), identity.ID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, "post created", map[string]any{"post": post})
}

// List handles GET /api/posts. Page and limit are clamped here, at the
// HTTP boundary, so the stores never see out-of-range values.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultPageLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	pp, err := h.posts.List(r.Context(), page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	posts := pp.Posts
	if posts == nil {
		posts = []models.Post{}
	}
	totalPages := (pp.Total + int64(limit) - 1) / int64(limit)
	respond(w, http.StatusOK, "", map[string]any{
		"posts":      posts,
		"total":      pp.Total,
		"page":       page,
		"totalPages": totalPages,
	})
}

// GetByID handles GET /api/posts/{id}.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), chi.URLParam(r, "id"), true)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{"post": post})
}

// GetBySlug handles GET /api/posts/slug/{slug}.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{"post": post})
}

// Update handles PUT /api/posts/{id}. Requires authentication; only the
// author or an admin may update.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req postBody
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	identity := middleware.IdentityFromCtx(r.Context())
	post, err := h.posts.Update(r.Context(), identity.ID, identity.Role == models.RoleAdmin,
		chi.URLParam(r, "id"), service.UpdatePostInput{
			Title:          req.Title,
			Content:        req.Content,
			Slug:           req.Slug,
			Excerpt:        req.Excerpt,
			FeaturedImage:  req.FeaturedImage,
			Tags:           req.Tags,
			Status:         req.Status,
			CommentEnabled: req.CommentEnabled,
			Categories:     req.Categories,
			SEO:            req.SEO,
		})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, "post updated", map[string]any{"post": post})
}

// Delete handles DELETE /api/posts/{id}. Requires authentication; only the
// author or an admin may delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromCtx(r.Context())
	err := h.posts.Delete(r.Context(), identity.ID, identity.Role == models.RoleAdmin,
		chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "post deleted", nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// queryInt parses an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
